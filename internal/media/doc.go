// Package media resolves the audio and image files that accompany a record.
//
// Audio is per record and target language ({audio_dir}/{key}.{ext}); images
// are per concept and named by the slug of the English lemma so every target
// language shares them. Missing files are logged as warnings and produce empty
// references; resolution never fails.
package media
