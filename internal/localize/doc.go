// Package localize supplies the label catalog used when rendering cards.
//
// A Catalog holds one flattened string table per locale, loaded from
// {locale}.yaml files of nested mappings. The built-in tables are embedded in
// the binary; a directory of overrides can replace or extend individual keys.
// Lookups walk a fallback chain (requested locale, its base language, English)
// and finally return a "category.key" placeholder, so rendering never fails
// on a missing translation.
package localize
