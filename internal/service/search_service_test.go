package service

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
	"github.com/stretchr/testify/assert"
)

func rawHit(fields map[string]string) meilisearch.Hit {
	hit := make(meilisearch.Hit, len(fields))
	for key, value := range fields {
		encoded, _ := json.Marshal(value)
		hit[key] = json.RawMessage(encoded)
	}
	return hit
}

func TestParseHitIDs(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	hits := meilisearch.Hits{
		rawHit(map[string]string{"id": first.String(), "name": "Amoxicillin"}),
		rawHit(map[string]string{"id": second.String(), "name": "Paracetamol"}),
	}

	ids := parseHitIDs(hits)
	assert.Equal(t, []uuid.UUID{first, second}, ids)
}

func TestParseHitIDsSkipsInvalidDocuments(t *testing.T) {
	valid := uuid.New()

	hits := meilisearch.Hits{
		rawHit(map[string]string{"id": "not-a-uuid", "name": "Broken"}),
		meilisearch.Hit{"id": json.RawMessage(`{"nested": true}`)},
		rawHit(map[string]string{"name": "Missing ID"}),
		rawHit(map[string]string{"id": valid.String(), "name": "Amoxicillin"}),
	}

	ids := parseHitIDs(hits)
	assert.Equal(t, []uuid.UUID{valid}, ids)
}

func TestParseHitIDsEmpty(t *testing.T) {
	assert.Empty(t, parseHitIDs(nil))
	assert.Empty(t, parseHitIDs(meilisearch.Hits{}))
}
