package token

import (
	"time"

	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"
)

type Maker interface {
	CreateToken(subjectID string, role model.Role, duration time.Duration) (string, *Payload, error)
	VerifyToken(token string) (*Payload, error)
}
