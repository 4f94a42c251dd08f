package http

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/handler/http/middleware"
)

const maxBodyBytes = 1 << 20

// decodeBody fills dst from a JSON body or from an HTML form post. Form
// fields are matched against dst's json tags.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return err
		}
		fields := make(map[string]string, len(r.PostForm))
		for key := range r.PostForm {
			fields[key] = r.PostForm.Get(key)
		}
		raw, err := json.Marshal(fields)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, dst)
	default:
		return json.NewDecoder(r.Body).Decode(dst)
	}
}

func actorFrom(r *http.Request) (user.Actor, error) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		return user.Actor{}, auth.ErrUnauthenticated
	}
	return actor, nil
}
