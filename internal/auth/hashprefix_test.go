package auth

import "testing"

func TestHashPrefix_LengthAndDeterminism(t *testing.T) {
	k := "test-token"
	p1 := HashPrefix(k)
	p2 := HashPrefix(k)
	if len(p1) != 8 { t.Fatalf("len=%d", len(p1)) }
	if p1 != p2 { t.Fatalf("non-deterministic: %s vs %s", p1, p2) }
	if HashPrefix("other") == p1 { t.Fatalf("distinct tokens share prefix") }
}

func TestNewToken_RandomHex(t *testing.T) {
	a, err := NewToken()
	if err != nil { t.Fatalf("token: %v", err) }
	b, _ := NewToken()
	if len(a) != 64 { t.Fatalf("len=%d", len(a)) }
	if a == b { t.Fatalf("tokens repeat") }
}
