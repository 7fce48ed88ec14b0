package server

import (
	"errors"
	"ferry/internal/logger"
	"ferry/internal/model"
	"ferry/internal/relocate"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type failureResponse struct {
	Path  string `json:"path"`
	IsDir bool   `json:"is_dir"`
	Error string `json:"error"`
}

type resultResponse struct {
	Path     string            `json:"path"`
	OK       bool              `json:"ok"`
	Failures []failureResponse `json:"failures"`
}

func newResultResponse(res *relocate.Result) resultResponse {
	resp := resultResponse{
		Path:     res.Path,
		OK:       res.OK(),
		Failures: make([]failureResponse, 0, len(res.Failures)),
	}
	for _, f := range res.Failures {
		resp.Failures = append(resp.Failures, failureResponse{
			Path:  f.Path,
			IsDir: f.IsDir,
			Error: f.Err.Error(),
		})
	}
	return resp
}

// statusOf maps a hard error onto an HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, fs.ErrExist):
		return http.StatusConflict
	case errors.Is(err, fs.ErrPermission):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

// reply records the operation in history and writes the result, or the hard
// error with a matching status.
func (s *Server) reply(c echo.Context, op model.Operation, src, dst string, res *relocate.Result, err error) error {
	failed := 0
	if res != nil {
		failed = len(res.Failures)
	}
	if saveErr := s.histRepo.Save(op, src, dst, failed, err); saveErr != nil {
		logger.Log.Warn("failed to save history",
			zap.Error(saveErr))
	}

	if err != nil {
		return c.JSON(statusOf(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, newResultResponse(res))
}
