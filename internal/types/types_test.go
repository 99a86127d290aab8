package types

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestNowRFC3339_Format(t *testing.T) {
	v := NowRFC3339()
	if _, err := time.Parse(time.RFC3339, v); err != nil {
		t.Fatalf("not RFC3339: %v", err)
	}
}

func TestDecodeTotalRequest_KeepsNumbersExact(t *testing.T) {
	body := `{"values":[100,"500",null,0.1,{"a":1}],"currency":"usd"}`
	req, err := DecodeTotalRequest(json.NewDecoder(strings.NewReader(body)))
	if err != nil { t.Fatalf("decode: %v", err) }
	if len(req.Values) != 5 { t.Fatalf("len=%d", len(req.Values)) }
	if n, ok := req.Values[3].(json.Number); !ok || n.String() != "0.1" { t.Fatalf("values[3]=%#v", req.Values[3]) }
	if s, ok := req.Values[1].(string); !ok || s != "500" { t.Fatalf("values[1]=%#v", req.Values[1]) }
	if req.Values[2] != nil { t.Fatalf("values[2]=%#v", req.Values[2]) }
	if req.Currency != "usd" { t.Fatalf("currency=%s", req.Currency) }
}

func TestDecodeTotalRequest_Malformed(t *testing.T) {
	if _, err := DecodeTotalRequest(json.NewDecoder(strings.NewReader("{bad"))); err == nil {
		t.Fatalf("expected error")
	}
}
