package repository

import (
	"database/sql"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwproject/portfolio-api/internal/domain"
)

func TestProjectRowToDomain(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	deletedAt := now.Add(time.Hour)
	raw := []byte{0x01, 0x02, 0x03}

	row := projectRow{
		ID:           7,
		OwnerID:      1,
		ProjectName:  "Portfolio",
		StartDate:    sql.NullTime{Time: now, Valid: true},
		Technologies: []byte(`["go","postgres"]`),
		Image:        raw,
		CreatedAt:    now,
		UpdatedAt:    now,
		DeletedAt:    sql.NullTime{Time: deletedAt, Valid: true},
	}

	p, err := row.toDomain()
	require.NoError(t, err)

	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, []string{"go", "postgres"}, p.Technologies)
	require.NotNil(t, p.StartDate)
	assert.True(t, p.StartDate.Equal(now))
	assert.Nil(t, p.EndDate)
	require.NotNil(t, p.DeletedAt)
	assert.True(t, p.Deleted())

	require.NotNil(t, p.Image)
	decoded, err := domain.DecodeImage(*p.Image)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestProjectRowToDomainEmpty(t *testing.T) {
	row := projectRow{ID: 1, OwnerID: 1, ProjectName: "P"}

	p, err := row.toDomain()
	require.NoError(t, err)
	assert.Nil(t, p.Image)
	assert.Nil(t, p.Technologies)
	assert.False(t, p.Deleted())
}

func TestProjectRowToDomainBadTechnologies(t *testing.T) {
	row := projectRow{ID: 1, Technologies: []byte(`{not json`)}

	_, err := row.toDomain()
	assert.Error(t, err)
}

func TestEncodeFields(t *testing.T) {
	raw := []byte("image-bytes")
	uri := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw)

	technologies, image, err := encodeFields(domain.Project{
		Technologies: []string{"go"},
		Image:        &uri,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `["go"]`, string(technologies))
	assert.Equal(t, raw, image)

	// nil technologies marshal to an empty array, never null
	technologies, image, err = encodeFields(domain.Project{})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(technologies))
	assert.Nil(t, image)

	bad := "data:image/jpeg;base64,@@@"
	_, _, err = encodeFields(domain.Project{Image: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
