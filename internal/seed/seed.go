package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	appRepos "github.com/yigit/eventsphere/internal/app/repositories"
	"github.com/yigit/eventsphere/internal/db"
)

// DefaultSubjects are created on start-up when missing
var DefaultSubjects = []string{"Mathematics", "Physics", "Chemistry", "Biology", "History"}

// CreateDefaultData creates the default subjects if they don't exist.
// Every subject is attempted; failures are joined into the returned error.
func CreateDefaultData(ctx context.Context, conn db.DBTX, lgr zerolog.Logger) error {
	subjectRepo := appRepos.NewSubjectRepository(conn)

	lgr.Info().Msg("Checking/Creating default data (Subjects)...")
	var finalErr error
	created := 0

	for _, name := range DefaultSubjects {
		inserted, err := subjectRepo.EnsureSubject(ctx, name)
		if err != nil {
			lgr.Error().Err(err).Str("subject", name).Msg("Error creating default subject")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if inserted {
			created++
		}
	}

	lgr.Info().Int("created", created).Msg("Default data check complete")
	return finalErr
}
