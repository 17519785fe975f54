package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/reglet-dev/userprofiles/internal/application/dto"
	apperrors "github.com/reglet-dev/userprofiles/internal/application/errors"
	"github.com/reglet-dev/userprofiles/internal/domain/entities"
	"github.com/reglet-dev/userprofiles/internal/domain/repositories"
	"github.com/reglet-dev/userprofiles/internal/domain/services"
	"github.com/reglet-dev/userprofiles/internal/domain/values"
	"github.com/reglet-dev/userprofiles/internal/infrastructure/validation"
	"github.com/reglet-dev/userprofiles/internal/version"
)

const (
	apiVersionHeader = "X-API-Version"
	maxBodyBytes     = 1 << 20

	// HelloMessage is the greeting served by GET /hello.
	HelloMessage = "Hello, World! OpenAPI Golang TypeScript Demo is working!"

	msgInvalidBody   = "Invalid request body"
	msgInvalidFields = "Profile fields contain errors"
	msgUserNotFound  = "User not found"
	msgInvalidUserID = "Invalid user ID"
	msgInternal      = "Internal server error"
)

func (s *Server) handleHello(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(apiVersionHeader, version.APIVersion)
	writeJSON(w, http.StatusOK, dto.HelloResponse{Message: HelloMessage})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.repo.List(r.Context())
	if err != nil {
		s.internalError(w, "list users", err)
		return
	}

	if stats := services.FieldNameStats(users); len(stats) > 0 {
		s.logger.Info("profile field name stats", "stats", stats)
	}

	if users == nil {
		users = []entities.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	if !s.checkSchema(w, s.validator.ValidateCreate, body) {
		return
	}

	var req dto.CreateUserRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody, apperrors.CodeBadRequest)
		return
	}
	if !s.checkFieldNames(w, req.ProfileFields) {
		return
	}

	user, err := s.repo.Create(r.Context(), entities.User{
		Name:          req.Name,
		Email:         req.Email,
		ProfileFields: req.ProfileFields,
	})
	if err != nil {
		s.internalError(w, "create user", err)
		return
	}

	s.logger.Info("user created", "id", user.ID, "fields", len(user.ProfileFields))
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	user, err := s.repo.FindByID(r.Context(), id)
	if err != nil {
		s.repoError(w, "get user", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	if !s.checkSchema(w, s.validator.ValidateUpdate, body) {
		return
	}

	var req dto.UpdateUserRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody, apperrors.CodeBadRequest)
		return
	}
	if req.ProfileFields != nil && !s.checkFieldNames(w, *req.ProfileFields) {
		return
	}

	user, err := s.repo.Update(r.Context(), id, func(u *entities.User) error {
		if req.Name != nil {
			u.Name = *req.Name
		}
		if req.Email != nil {
			u.Email = *req.Email
		}
		if req.ProfileFields != nil {
			u.ProfileFields = *req.ProfileFields
		}
		return nil
	})
	if err != nil {
		s.repoError(w, "update user", err)
		return
	}

	s.logger.Info("user updated", "id", user.ID)
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := s.repo.Delete(r.Context(), id); err != nil {
		s.repoError(w, "delete user", err)
		return
	}

	s.logger.Info("user deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.logger.Debug("failed to read request body", "error", err)
		writeError(w, http.StatusBadRequest, msgInvalidBody, apperrors.CodeBadRequest)
		return nil, false
	}
	return body, true
}

func (s *Server) checkSchema(w http.ResponseWriter, validate func([]byte) error, body []byte) bool {
	err := validate(body)
	if err == nil {
		return true
	}

	var validationErr *apperrors.ValidationError
	switch {
	case errors.Is(err, validation.ErrMalformedJSON):
		s.logger.Debug("malformed request body", "error", err)
		writeError(w, http.StatusBadRequest, msgInvalidBody, apperrors.CodeBadRequest)
	case errors.As(err, &validationErr):
		s.logger.Debug("request rejected by schema", "details", validationErr.Details)
		writeError(w, http.StatusBadRequest, msgInvalidFields, apperrors.CodeValidation, validationErr.Details...)
	default:
		s.internalError(w, "validate request", err)
	}
	return false
}

func (s *Server) checkFieldNames(w http.ResponseWriter, fields []entities.ProfileField) bool {
	services.LogFieldNames(s.logger, fields)

	if problems := services.ValidateFieldNames(fields); len(problems) > 0 {
		s.logger.Info("profile field validation failed", "problems", problems)
		writeError(w, http.StatusBadRequest, msgInvalidFields, apperrors.CodeValidation, problems...)
		return false
	}
	return true
}

func (s *Server) repoError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, repositories.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, msgUserNotFound, apperrors.CodeUserNotFound)
		return
	}
	s.internalError(w, op, err)
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.logger.Error("request failed", "op", op, "error", err)
	writeError(w, http.StatusInternalServerError, msgInternal, "")
}

func parseID(w http.ResponseWriter, r *http.Request) (values.UserID, bool) {
	id, err := values.ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidUserID, apperrors.CodeBadRequest)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, code string, details ...string) {
	writeJSON(w, status, dto.ErrorResponse{Message: message, Code: code, Details: details})
}
