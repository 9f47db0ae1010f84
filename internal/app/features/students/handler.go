// internal/app/features/students/handler.go
package students

import (
	"net/http"

	classrepstore "github.com/campushub/unihub/internal/app/store/classreps"
	studentstore "github.com/campushub/unihub/internal/app/store/students"
	"github.com/campushub/unihub/internal/app/system/httpjson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves student registration, profile reads, section selection,
// and the class-representative workflow.
type Handler struct {
	students  *studentstore.Store
	classreps *classrepstore.Store
	log       *zap.Logger
}

// NewHandler constructs a students Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		students:  studentstore.New(db),
		classreps: classrepstore.New(db),
		log:       logger,
	}
}

// storeError logs an unexpected store failure and answers 503. The failure
// is fatal to this request only.
func (h *Handler) storeError(w http.ResponseWriter, op string, err error) {
	h.log.Error("students: store operation failed", zap.String("op", op), zap.Error(err))
	httpjson.Error(w, http.StatusServiceUnavailable, "storage unavailable")
}
