package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataquality/internal/domain"
)

func TestConcessionRecord_CopiesIdentifier(t *testing.T) {
	cve := "12345"
	rec := domain.NewConcessionRecord("A", "B", &cve, "C", 1)
	cve = "99999"

	got, ok := rec.CVENumber()
	assert.True(t, ok)
	assert.Equal(t, "12345", got)

	ptr := rec.CVENumberPtr()
	*ptr = "00000"
	got, _ = rec.CVENumber()
	assert.Equal(t, "12345", got)
}

func TestConcessionRecord_AbsentIdentifier(t *testing.T) {
	rec := domain.NewConcessionRecord("A", "B", nil, "C", 1)

	_, ok := rec.CVENumber()
	assert.False(t, ok)
	assert.Nil(t, rec.CVENumberPtr())
	assert.True(t, rec.HasBlankCVE())
}

func TestConcessionRecord_HasBlankCVE(t *testing.T) {
	blank := " \t"
	present := "12"
	assert.True(t, domain.NewConcessionRecord("A", "B", &blank, "C", 0).HasBlankCVE())
	assert.False(t, domain.NewConcessionRecord("A", "B", &present, "C", 0).HasBlankCVE())
}

func TestConcessionRecord_JSON(t *testing.T) {
	data, err := json.Marshal(domain.NewConcessionRecord("North", "Ridge", nil, "NORTH", -1.5))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"concession_name": "North",
		"company_name": "Ridge",
		"cve_number": null,
		"region": "NORTH",
		"sentiment_score": -1.5
	}`, string(data))

	var rec domain.ConcessionRecord
	require.NoError(t, json.Unmarshal([]byte(`{"concession_name":"X","company_name":"Y","region":"Z","sentiment_score":2}`), &rec))
	_, ok := rec.CVENumber()
	assert.False(t, ok)
	assert.Equal(t, "X", rec.ConcessionName())
	assert.Equal(t, 2.0, rec.SentimentScore())

	require.NoError(t, json.Unmarshal([]byte(`{"cve_number":"54321"}`), &rec))
	cve, ok := rec.CVENumber()
	assert.True(t, ok)
	assert.Equal(t, "54321", cve)
}
