package config

const (
	defaultListsDir            = "./lists"
	defaultDecksDir            = "./build"
	defaultMediaDir            = "./media"
	defaultDumpDir             = "./dump"
	defaultFrequencyDir        = "./frequency"
	defaultBasicsPath          = "./basics.yaml"
	defaultTemplatePath        = "./templates/refinement_prompt.md"
	defaultNativeLanguage      = "en"
	defaultChunkSize           = 50
	defaultAudioExt            = "mp3"
	defaultImageExt            = "jpg"
	defaultFrequencyListLength = 2500
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ListsDir:     defaultListsDir,
			DecksDir:     defaultDecksDir,
			MediaDir:     defaultMediaDir,
			DumpDir:      defaultDumpDir,
			FrequencyDir: defaultFrequencyDir,
			BasicsPath:   defaultBasicsPath,
			TemplatePath: defaultTemplatePath,
		},
		Deck: Deck{
			NativeLanguage:      defaultNativeLanguage,
			ChunkSize:           defaultChunkSize,
			AudioExt:            defaultAudioExt,
			ImageExt:            defaultImageExt,
			FrequencyListLength: defaultFrequencyListLength,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
