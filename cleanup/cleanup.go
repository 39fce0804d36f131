// Package cleanup finds and removes stored objects that no project or hero
// config references anymore. It runs offline as its own process, never in
// the request path.
package cleanup

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/studiomezzo/studio-site-backend/database"
	"github.com/studiomezzo/studio-site-backend/storage"
)

// ObjectLister is the slice of the object store the maintenance tool needs.
type ObjectLister interface {
	List(ctx context.Context) ([]storage.Object, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// Report summarizes one analyze pass over the bucket.
type Report struct {
	TotalObjects     int
	Unused           []storage.Object
	ReclaimableBytes int64
}

// ReferencedURLs collects every image URL the database still points at:
// project images plus hero slide and background images.
func ReferencedURLs(ctx context.Context, db database.Database) (map[string]bool, error) {
	referenced := make(map[string]bool)

	projects, err := db.ProjectRepo().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		referenced[p.ImageURL] = true
	}

	heroes, err := db.HeroProjectRepo().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, h := range heroes {
		for _, img := range h.Images {
			referenced[img] = true
		}
		referenced[h.BackgroundImage] = true
	}

	return referenced, nil
}

// Analyze lists the whole bucket and cross-references every object's public
// URL against the referenced set.
func Analyze(ctx context.Context, objects ObjectLister, referenced map[string]bool) (Report, error) {
	stored, err := objects.List(ctx)
	if err != nil {
		return Report{}, err
	}

	report := Report{TotalObjects: len(stored)}
	for _, obj := range stored {
		if referenced[objects.PublicURL(obj.Key)] {
			continue
		}
		report.Unused = append(report.Unused, obj)
		report.ReclaimableBytes += obj.Size
	}

	return report, nil
}

// Delete removes every object in the report, stopping at the first failure
// so a flaky bucket never half-reports success.
func Delete(ctx context.Context, objects ObjectLister, report Report) (int, error) {
	deleted := 0
	for _, obj := range report.Unused {
		if err := objects.Delete(ctx, obj.Key); err != nil {
			return deleted, err
		}
		log.Info().Str("key", obj.Key).Int64("size", obj.Size).Msg("Deleted unused object")
		deleted++
	}
	return deleted, nil
}
