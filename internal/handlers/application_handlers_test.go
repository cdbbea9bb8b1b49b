package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"afterhourshvac/internal/caching"
	"afterhourshvac/internal/common"
	"afterhourshvac/internal/models"
	"afterhourshvac/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func multipartBody(t *testing.T, fields map[string]string, fileField, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+fileField+`"; filename="`+filename+`"`)
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

var applicationFields = map[string]string{
	"firstName":       "Riley",
	"lastName":        "Tech",
	"email":           "riley@example.com",
	"phone":           "403 555 0101",
	"position":        "Service Technician",
	"experienceYears": "4",
}

func TestSubmitApplication_WithResume(t *testing.T) {
	e := newTestEcho(t)
	svc := new(MockApplicationService)
	e.POST("/api/job-applications", NewApplicationHandlers(svc).Submit)

	svc.On("Submit", mock.Anything, mock.MatchedBy(func(req services.ApplicationRequest) bool {
		return req.FirstName == "Riley" && req.ExperienceYears == 4
	}), mock.MatchedBy(func(u *services.Upload) bool {
		return u != nil && u.Filename == "resume.pdf" && u.Size == 8
	})).Return(&models.JobApplication{ID: uuid.New(), HasResume: true}, nil)

	body, ct := multipartBody(t, applicationFields, "resume", "resume.pdf", "application/pdf", []byte("%PDF-1.4"))
	rec := serve(e, http.MethodPost, "/api/job-applications", ct, body)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, caching.ResourceApplications, rec.Header().Get(common.InvalidateHeader))
	svc.AssertExpectations(t)
}

func TestSubmitApplication_WithoutResume(t *testing.T) {
	e := newTestEcho(t)
	svc := new(MockApplicationService)
	e.POST("/api/job-applications", NewApplicationHandlers(svc).Submit)

	svc.On("Submit", mock.Anything, mock.Anything, (*services.Upload)(nil)).
		Return(&models.JobApplication{ID: uuid.New()}, nil)

	body, ct := multipartBody(t, applicationFields, "", "", "", nil)
	rec := serve(e, http.MethodPost, "/api/job-applications", ct, body)

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestSubmitApplication_Validation(t *testing.T) {
	e := newTestEcho(t)
	svc := new(MockApplicationService)
	e.POST("/api/job-applications", NewApplicationHandlers(svc).Submit)

	body, ct := multipartBody(t, map[string]string{"firstName": "R", "email": "bad"}, "", "", "", nil)
	rec := serve(e, http.MethodPost, "/api/job-applications", ct, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	details := decodeError(t, rec).Error.Details
	assert.Contains(t, details, "firstName")
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "position")
}

func TestApplicationStatusAndResume(t *testing.T) {
	e := newTestEcho(t)
	svc := new(MockApplicationService)
	h := NewApplicationHandlers(svc)
	e.PUT("/api/admin/job-applications/:id/status", h.UpdateStatus)
	e.GET("/api/admin/job-applications/:id/resume", h.Resume)

	id := uuid.New()
	svc.On("UpdateStatus", mock.Anything, id, models.ApplicationStatus("interviewing")).
		Return(common.NewValidationError("status", "must be one of: pending reviewing approved rejected hired"))
	rec := serveJSON(e, http.MethodPut, "/api/admin/job-applications/"+id.String()+"/status", `{"status":"interviewing"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.On("ResumeURL", mock.Anything, id).Return("https://minio.local/resumes/x?X-Amz-Signature=abc", nil)
	rec = serve(e, http.MethodGet, "/api/admin/job-applications/"+id.String()+"/resume", "", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "X-Amz-Signature")
}

func TestTeamPhoto(t *testing.T) {
	e := newTestEcho(t)
	svc := new(MockTeamService)
	h := NewTeamHandlers(svc)
	e.POST("/api/team/:id/photo", h.UploadPhoto)
	e.GET("/api/team/:id/photo", h.Photo)

	id := uuid.New()
	body, ct := multipartBody(t, nil, "photo", "me.txt", "text/plain", []byte("hello"))
	rec := serve(e, http.MethodPost, "/api/team/"+id.String()+"/photo", ct, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.On("UploadPhoto", mock.Anything, id, mock.Anything, int64(4), "image/png").
		Return(&models.TeamMember{ID: id, PhotoURL: "/api/team/" + id.String() + "/photo"}, nil)
	body, ct = multipartBody(t, nil, "photo", "me.png", "image/png", []byte{0x89, 'P', 'N', 'G'})
	rec = serve(e, http.MethodPost, "/api/team/"+id.String()+"/photo", ct, body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, caching.ResourceTeam, rec.Header().Get(common.InvalidateHeader))

	svc.On("PhotoURL", mock.Anything, id).Return("", services.ErrNotFound).Once()
	rec = serve(e, http.MethodGet, "/api/team/"+id.String()+"/photo", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
