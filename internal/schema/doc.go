// Package schema checks the structural shape of word record batches.
//
// Validation is a tagged-variant check discriminated on word_type: every
// record must satisfy the base shape (recognized field names, string values,
// known enum values, the required language fields and optionally the key), and
// the verb variant additionally requires all six conjugation fields. No other
// variant adds requirements.
//
// Failures are returned as values carrying the record index, the offending
// field and rule, and a readable reason. Callers decide whether a failure
// aborts the surrounding operation.
package schema
