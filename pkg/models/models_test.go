package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"
)

// ── Money Tests ──

func TestMoneyArithmeticIsExact(t *testing.T) {
	a := M(0.1)
	b := M(0.2)
	if got := a.Add(b); !got.Equal(M(0.3)) {
		t.Errorf("0.1 + 0.2: got %s, want 0.30", got.Exact())
	}
	if got := M(1000).Sub(M(1250.5)); got.Exact() != "-250.5" {
		t.Errorf("Sub: got %s, want -250.5", got.Exact())
	}
	if got := M(100).Mul(decimal.RequireFromString("1.2")); !got.Equal(M(120)) {
		t.Errorf("Mul: got %s, want 120", got.Exact())
	}
	if got := Sum(M(1), M(2), M(3.5)); !got.Equal(M(6.5)) {
		t.Errorf("Sum: got %s, want 6.5", got.Exact())
	}
}

func TestMoneyWithin(t *testing.T) {
	tol := M(0.01)
	if !M(100).Within(M(100.01), tol) {
		t.Error("100 and 100.01 should be within 0.01")
	}
	if M(100).Within(M(100.02), tol) {
		t.Error("100 and 100.02 should not be within 0.01")
	}
}

func TestMoneyJSON(t *testing.T) {
	data, err := json.Marshal(M(1234.567))
	if err != nil {
		t.Fatalf("json.Marshal(Money) error: %v", err)
	}
	if string(data) != "1234.57" {
		t.Errorf("got %s, want 1234.57", data)
	}

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{`1000`, "1000", false},
		{`"2500.75"`, "2500.75", false},
		{`" 12 "`, "12", false},
		{`"abc"`, "", true},
		{`null`, "", true},
		{`true`, "", true},
	}
	for _, tt := range tests {
		var m Money
		err := json.Unmarshal([]byte(tt.in), &m)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Unmarshal(%s): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("Unmarshal(%s) error: %v", tt.in, err)
			continue
		}
		if m.Exact() != tt.want {
			t.Errorf("Unmarshal(%s): got %s, want %s", tt.in, m.Exact(), tt.want)
		}
	}
}

// ── Ratio Tests ──

func TestDivSentinel(t *testing.T) {
	r := Div(M(100), Zero)
	if r.Valid() {
		t.Fatal("division by zero should be the sentinel")
	}
	if r.Scale(100).Valid() || r.Mul(R(2)).Valid() {
		t.Error("sentinel should propagate through arithmetic")
	}
	data, _ := json.Marshal(r)
	if string(data) != "null" {
		t.Errorf("sentinel JSON: got %s, want null", data)
	}
}

func TestRatioJSONRounding(t *testing.T) {
	r := Div(M(2), M(3))
	data, _ := json.Marshal(r)
	if string(data) != "0.6667" {
		t.Errorf("got %s, want 0.6667", data)
	}
	var back Ratio
	if err := json.Unmarshal([]byte("null"), &back); err != nil || back.Valid() {
		t.Errorf("null should decode to the sentinel, err=%v", err)
	}
	if err := json.Unmarshal([]byte("1.5"), &back); err != nil || !back.Approx(R(1.5), 1e-12) {
		t.Errorf("1.5 should decode, got %v err=%v", back, err)
	}
}

func TestRatioNaNIsSentinel(t *testing.T) {
	zero := 0.0
	if R(zero / zero).Valid() {
		t.Error("NaN should be the sentinel")
	}
}

func TestRatioYAML(t *testing.T) {
	out, err := yaml.Marshal(map[string]Ratio{"a": R(0.5), "b": Sentinel()})
	if err != nil {
		t.Fatalf("yaml.Marshal error: %v", err)
	}
	if string(out) != "a: 0.5\nb: null\n" {
		t.Errorf("got %q", out)
	}
}

// ── LedgerEntry Tests ──

func TestLedgerEntryJSONKeepsPrecision(t *testing.T) {
	e := LedgerEntry{
		ID:          "1",
		AccountName: "Caja",
		Value:       M(1000.125),
		Year:        2023,
		Type:        TypeAsset,
		SubType:     SubTypeCurrent,
	}
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("json.Marshal(LedgerEntry) error: %v", err)
	}
	var decoded LedgerEntry
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal(LedgerEntry) error: %v", err)
	}
	if !decoded.Value.Equal(e.Value) {
		t.Errorf("Value: got %s, want %s", decoded.Value.Exact(), e.Value.Exact())
	}
	if decoded.SubType != SubTypeCurrent || decoded.Type != TypeAsset {
		t.Errorf("type/subType lost: %+v", decoded)
	}
}

func TestLedgerEntryMissingValue(t *testing.T) {
	var e LedgerEntry
	if err := json.Unmarshal([]byte(`{"id":"x","accountName":"Caja","year":2023,"type":"asset"}`), &e); err == nil {
		t.Error("expected error for missing value")
	}
}

// ── Error Tests ──

func TestInsufficientPeriodsIs(t *testing.T) {
	err := fmt.Errorf("cash flow: %w", &InsufficientPeriodsError{Component: "flujo_efectivo", Need: 2, Have: 1})
	if !errors.Is(err, ErrInsufficientPeriods) {
		t.Error("errors.Is should match ErrInsufficientPeriods")
	}
	p := ProblemFrom(err)
	if p.Kind != KindInsufficientPeriods {
		t.Errorf("Kind: got %s", p.Kind)
	}
}

func TestProblemFromClassification(t *testing.T) {
	err := fmt.Errorf("analyze: %w", &ClassificationError{EntryID: "e7", Field: "type", Reason: `unrecognized "activo"`})
	p := ProblemFrom(err)
	if p.Kind != KindClassification || p.EntryID != "e7" {
		t.Errorf("got %+v", p)
	}
	if ProblemFrom(errors.New("boom")).Kind != KindInternal {
		t.Error("unknown errors should be internal")
	}
}
