package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func testURI() string {
	if uri := os.Getenv("MONGO_TEST_URI"); uri != "" {
		return uri
	}
	return "mongodb://localhost:27017"
}

func TestOpen_MissingDatabase(t *testing.T) {
	_, err := Open(context.Background(), testURI(), "")
	if !errors.Is(err, ErrMissingDatabase) { t.Fatalf("err=%v", err) }
}

func TestOpen_BadURI(t *testing.T) {
	if _, err := Open(context.Background(), "not-a-mongo-uri", "monelog_test"); err == nil {
		t.Fatalf("expected error for malformed uri")
	}
}

func TestOpen_PingAndCollection(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s, err := Open(ctx, testURI(), "monelog_test")
	if err != nil { t.Fatalf("open: %v", err) }
	defer func() { _ = s.Close(context.Background()) }()
	if err := s.Ping(ctx); err != nil {
		t.Skipf("skipping: mongo ping failed: %v", err)
	}
	if s.Name() != "monelog_test" { t.Fatalf("name=%s", s.Name()) }

	coll := s.Collection("store_smoke")
	_ = coll.Drop(ctx)
	if _, err := coll.InsertOne(ctx, bson.D{{Key: "k", Value: 1}}); err != nil { t.Fatalf("insert: %v", err) }
	n, err := coll.CountDocuments(ctx, bson.D{})
	if err != nil || n != 1 { t.Fatalf("count=%d err=%v", n, err) }
}
