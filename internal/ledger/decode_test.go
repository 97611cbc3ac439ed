package ledger

import (
	"errors"
	"strings"
	"testing"

	"github.com/DJ03MT/FinanzasProyecto/pkg/models"
)

func TestParseEntriesArray(t *testing.T) {
	body := `[{"id":"1","accountName":"Caja","value":"1000.50","year":2023,"type":"asset","subType":"current"},
	          {"id":"2","accountName":"Capital","value":1000.5,"year":2023,"type":"equity"}]`
	entries, err := ParseEntries([]byte(body))
	if err != nil {
		t.Fatalf("ParseEntries error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if !entries[0].Value.Equal(entries[1].Value) {
		t.Errorf("string and number values should decode equally: %s vs %s", entries[0].Value, entries[1].Value)
	}
}

func TestParseEntriesRecordsWrapper(t *testing.T) {
	entries, err := DecodeEntries(strings.NewReader(`{"records":[{"id":"1","accountName":"Caja","value":1,"year":2023,"type":"asset"}]}`))
	if err != nil {
		t.Fatalf("DecodeEntries error: %v", err)
	}
	if len(entries) != 1 || entries[0].AccountName != "Caja" {
		t.Errorf("got %+v", entries)
	}
}

func TestParseEntriesNonNumericValue(t *testing.T) {
	body := `[{"id":"ok","accountName":"Caja","value":1,"year":2023,"type":"asset"},
	          {"id":"bad-7","accountName":"Bancos","value":"mil","year":2023,"type":"asset"}]`
	_, err := ParseEntries([]byte(body))
	var ce *models.ClassificationError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ClassificationError, got %v", err)
	}
	if ce.EntryID != "bad-7" {
		t.Errorf("EntryID: got %q, want bad-7", ce.EntryID)
	}
}

func TestParseEntriesPositionFallback(t *testing.T) {
	_, err := ParseEntries([]byte(`[{"accountName":"Caja","value":[],"year":2023,"type":"asset"}]`))
	var ce *models.ClassificationError
	if !errors.As(err, &ce) || ce.EntryID != "#0" {
		t.Errorf("expected entry #0, got %v", err)
	}
}

func TestFingerprintIgnoresOrder(t *testing.T) {
	entries := sampleEntries()
	swapped := append([]models.LedgerEntry{}, entries...)
	swapped[0], swapped[len(swapped)-1] = swapped[len(swapped)-1], swapped[0]
	if Fingerprint(entries) != Fingerprint(swapped) {
		t.Error("fingerprint should not depend on order")
	}
	changed := append([]models.LedgerEntry{}, entries...)
	changed[0].Value = models.M(1001)
	if Fingerprint(entries) == Fingerprint(changed) {
		t.Error("fingerprint should change with a value")
	}
	if len(Fingerprint(entries)) != 64 {
		t.Error("fingerprint should be hex sha256")
	}
}
