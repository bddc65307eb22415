// Package vocab reads and writes vocabulary files: a JSON array of entry
// objects. Entries keep their raw JSON so field order and unknown fields
// survive a load/save round trip untouched.
package vocab
