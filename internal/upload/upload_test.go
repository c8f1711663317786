package upload

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronomaps/atlas-cli/internal/geojson"
	"github.com/chronomaps/atlas-cli/pkg/mapbox"
)

// fakeMapbox records dataset writes in memory.
type fakeMapbox struct {
	created  []string
	features map[string]json.RawMessage
	failIDs  map[string]bool
}

func newFakeMapbox() *fakeMapbox {
	return &fakeMapbox{features: map[string]json.RawMessage{}}
}

func (f *fakeMapbox) GetDataset(ctx context.Context, datasetID string) (*mapbox.Dataset, error) {
	return &mapbox.Dataset{ID: datasetID, Features: len(f.features)}, nil
}

func (f *fakeMapbox) CreateDataset(ctx context.Context, name, description string) (*mapbox.Dataset, error) {
	f.created = append(f.created, name)
	return &mapbox.Dataset{ID: "ds-new", Name: name}, nil
}

func (f *fakeMapbox) PutFeature(ctx context.Context, datasetID, featureID string, feature json.RawMessage) error {
	if f.failIDs[featureID] {
		return eris.New("quota exceeded")
	}
	f.features[featureID] = feature
	return nil
}

func (f *fakeMapbox) DeleteFeature(ctx context.Context, datasetID, featureID string) error {
	delete(f.features, featureID)
	return nil
}

func collection(features ...*geojson.Feature) *geojson.Collection {
	return &geojson.Collection{Type: "FeatureCollection", Name: "regions", Features: features}
}

func TestUpload_ExistingDataset(t *testing.T) {
	t.Parallel()

	mb := newFakeMapbox()
	coll := collection(
		&geojson.Feature{Type: "Feature", ID: "f-1", Properties: map[string]any{"title": "A"}},
		&geojson.Feature{Type: "Feature", ID: "f-2", Properties: map[string]any{"title": "B"}},
	)

	summary, err := New(mb).Upload(context.Background(), "ds-1", coll)
	require.NoError(t, err)

	assert.Equal(t, "ds-1", summary.DatasetID)
	assert.Equal(t, 2, summary.Uploaded)
	assert.Empty(t, mb.created)
	assert.Contains(t, mb.features, "f-1")
	assert.Contains(t, mb.features, "f-2")
}

func TestUpload_CreatesDatasetWhenMissing(t *testing.T) {
	t.Parallel()

	mb := newFakeMapbox()
	coll := collection(&geojson.Feature{Type: "Feature", ID: "f-1"})

	summary, err := New(mb).Upload(context.Background(), "", coll)
	require.NoError(t, err)

	assert.Equal(t, "ds-new", summary.DatasetID)
	assert.Equal(t, []string{"regions"}, mb.created)
}

func TestUpload_GeneratesAndPersistsFeatureIDs(t *testing.T) {
	t.Parallel()

	mb := newFakeMapbox()
	coll := collection(
		&geojson.Feature{Type: "Feature"},
		&geojson.Feature{Type: "Feature", ID: float64(7)},
	)

	summary, err := New(mb).Upload(context.Background(), "ds-1", coll)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Uploaded)

	// The generated ID is written back into the collection.
	id, ok := coll.Features[0].ID.(string)
	require.True(t, ok)
	assert.NotEmpty(t, id)
	assert.Contains(t, mb.features, id)

	// Numeric IDs are reused as strings.
	assert.Equal(t, "7", coll.Features[1].ID)
	assert.Contains(t, mb.features, "7")
}

func TestUpload_FailedFeatureCountedNotFatal(t *testing.T) {
	t.Parallel()

	mb := newFakeMapbox()
	mb.failIDs = map[string]bool{"f-1": true}
	coll := collection(
		&geojson.Feature{Type: "Feature", ID: "f-1"},
		&geojson.Feature{Type: "Feature", ID: "f-2"},
	)

	summary, err := New(mb).Upload(context.Background(), "ds-1", coll)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Uploaded)
	assert.Equal(t, 1, summary.Failed)
	assert.NotContains(t, mb.features, "f-1")
}
