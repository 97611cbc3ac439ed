package ledger

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/DJ03MT/FinanzasProyecto/pkg/models"
)

// ParseEntries decodes the inbound contract: either a JSON array of entries
// or an object wrapping the array under "records". A malformed entry is
// reported as a ClassificationError carrying its id.
func ParseEntries(data []byte) ([]models.LedgerEntry, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, &models.ClassificationError{Field: "entries", Reason: "empty body"}
	}

	var raws []json.RawMessage
	if data[0] == '{' {
		var wrapper struct {
			Records []json.RawMessage `json:"records"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, &models.ClassificationError{Field: "entries", Reason: err.Error()}
		}
		raws = wrapper.Records
	} else if err := json.Unmarshal(data, &raws); err != nil {
		return nil, &models.ClassificationError{Field: "entries", Reason: err.Error()}
	}

	entries := make([]models.LedgerEntry, 0, len(raws))
	for i, raw := range raws {
		var e models.LedgerEntry
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, &models.ClassificationError{EntryID: entryID(raw, i), Field: "entry", Reason: err.Error()}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// DecodeEntries reads the whole stream and parses it with ParseEntries.
func DecodeEntries(r io.Reader) ([]models.LedgerEntry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read entries: %w", err)
	}
	return ParseEntries(data)
}

// entryID recovers the id of an entry that failed to decode, falling back to
// its position.
func entryID(raw json.RawMessage, index int) string {
	var probe struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(raw, &probe); err == nil && len(probe.ID) > 0 {
		var s string
		if json.Unmarshal(probe.ID, &s) == nil {
			return s
		}
		return string(probe.ID)
	}
	return "#" + strconv.Itoa(index)
}

// Fingerprint is the hex SHA-256 of the canonical form of an entry set. Two
// sets that differ only in order share a fingerprint.
func Fingerprint(entries []models.LedgerEntry) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%q|%q|%s|%d|%s|%s|%s",
			e.ID, e.AccountName, e.Value.Exact(), e.Year, e.Type, e.SubType, e.Kind)
	}
	sort.Strings(lines)

	h := sha256.New()
	for _, l := range lines {
		io.WriteString(h, l)
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
