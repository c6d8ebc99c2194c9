package ui

import (
	"context"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"chartlab/domain/core"
	"chartlab/internal"
	"chartlab/internal/errors"

	"github.com/gin-gonic/gin"
)

// statusFor maps an application error code to an HTTP status
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeInvalidInput, errors.CodeValidationError:
		return http.StatusBadRequest
	case errors.CodeUnsupportedFile:
		return http.StatusUnsupportedMediaType
	case errors.CodeFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.CodeUnsupportedChart:
		return http.StatusUnprocessableEntity
	}
	if core.IsNotFoundError(err) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// respondError writes {"error", "code"}. Internal failures are logged and
// their details withheld from the client.
func (s *Server) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		s.logger.Error("[API] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		message = "internal server error"
		if !errors.IsAppError(err) {
			code = errors.CodeInternalError
		}
	}

	c.AbortWithStatusJSON(status, gin.H{"error": message, "code": code})
}

// datasetID parses the :id path parameter, answering 400 when malformed
func (s *Server) datasetID(c *gin.Context) (core.ID, bool) {
	id, err := core.ParseID(c.Param("id"))
	if err != nil {
		s.respondError(c, errors.WithCode(errors.CodeInvalidInput, err))
		return "", false
	}
	return id, true
}

// queryInt reads an integer query parameter no smaller than least, clamped to
// limit. Missing, malformed or too small values yield def.
func queryInt(c *gin.Context, name string, def, least, limit int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < least {
		return def
	}
	if limit > 0 && n > limit {
		return limit
	}
	return n
}

// serve runs srv until ctx ends and then drains it within timeout
func serve(ctx context.Context, srv *http.Server, timeout time.Duration, logger *internal.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server on %s", srv.Addr)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrapf(err, "failed to shut down %s", srv.Addr)
	}
	return <-errCh
}
