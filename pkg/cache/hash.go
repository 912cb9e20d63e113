package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// keySchema is mixed into every stage key. Bump it when the grid, layout
// document or artifact encoding changes so stale entries stop matching.
const keySchema = 1

// hashKey returns "<stage>:<sha256>" over the schema, the upstream hash and
// the stage options. Options are JSON-encoded, so field order in the
// *KeyOpts structs is part of the key.
func hashKey(stage, upstream string, opts any) string {
	data, _ := json.Marshal([]any{keySchema, upstream, opts})
	sum := sha256.Sum256(data)
	return stage + ":" + hex.EncodeToString(sum[:])
}

// Hash returns the hex SHA-256 of data. Payloads, grids, layouts and
// overlay images are identified by it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
