// Package upload publishes cleaned collections to a Mapbox dataset, one
// feature at a time through the Datasets API.
package upload

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/chronomaps/atlas-cli/internal/geojson"
	"github.com/chronomaps/atlas-cli/pkg/mapbox"
)

// Summary reports what an upload run did.
type Summary struct {
	DatasetID string `json:"dataset_id"`
	Uploaded  int    `json:"uploaded"`
	Failed    int    `json:"failed"`
}

// Uploader writes feature collections into Mapbox datasets.
type Uploader struct {
	client mapbox.Client
}

// New creates an Uploader.
func New(client mapbox.Client) *Uploader {
	return &Uploader{client: client}
}

// Upload upserts every feature of the collection into the dataset. When
// datasetID is empty a new dataset named after the collection is created.
// Features without an ID get a generated one so re-uploads of the same file
// replace rather than duplicate nothing; generated IDs are written back into
// the collection so the caller can persist them.
func (u *Uploader) Upload(ctx context.Context, datasetID string, coll *geojson.Collection) (*Summary, error) {
	if datasetID == "" {
		ds, err := u.client.CreateDataset(ctx, coll.Name, "uploaded by atlas-cli")
		if err != nil {
			return nil, eris.Wrap(err, "upload: create dataset")
		}
		datasetID = ds.ID
		zap.L().Info("upload: created dataset",
			zap.String("dataset_id", datasetID),
			zap.String("name", coll.Name))
	}

	summary := &Summary{DatasetID: datasetID}

	for i, feat := range coll.Features {
		id := featureID(feat)
		feat.ID = id

		payload, err := json.Marshal(feat)
		if err != nil {
			return nil, eris.Wrapf(err, "upload: marshal feature %d", i)
		}

		if err := u.client.PutFeature(ctx, datasetID, id, payload); err != nil {
			if ctx.Err() != nil {
				return nil, eris.Wrap(err, "upload: put feature")
			}
			zap.L().Warn("upload: feature upload failed",
				zap.String("feature_id", id),
				zap.Error(err))
			summary.Failed++
			continue
		}
		summary.Uploaded++
	}

	zap.L().Info("upload: run complete",
		zap.String("dataset_id", datasetID),
		zap.Int("uploaded", summary.Uploaded),
		zap.Int("failed", summary.Failed),
	)

	return summary, nil
}

// featureID returns a stable string ID for a feature, generating one when
// the feature has none.
func featureID(f *geojson.Feature) string {
	switch v := f.ID.(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return fmt.Sprintf("%.0f", v)
	case int:
		return fmt.Sprintf("%d", v)
	}
	return uuid.NewString()
}
