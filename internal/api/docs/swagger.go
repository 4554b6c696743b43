package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// EnrollResponse represents the response for a successful enrollment
type EnrollResponse struct {
	RosterID        string  `json:"roster_id" example:"S12345"`
	Name            string  `json:"name" example:"Alice Nguyen"`
	ImagesSubmitted int     `json:"images_submitted" example:"3"`
	ImagesUsed      int     `json:"images_used" example:"2"`
	Threshold       float64 `json:"threshold" example:"0.4"`
	LastTrained     string  `json:"last_trained" example:"2026-08-31T10:00:00Z"`
}

// AttendanceOutcomeData is one reconciled roster member outcome
type AttendanceOutcomeData struct {
	StudentID   string  `json:"student_id" example:"S12345"`
	StudentName string  `json:"student_name" example:"Alice Nguyen"`
	Status      string  `json:"status" example:"present"`
	Confidence  float64 `json:"confidence" example:"0.87"`
	Detected    bool    `json:"detected" example:"true"`
}

// RecognitionResponse represents the response for a recognition run
type RecognitionResponse struct {
	SessionID        string                  `json:"session_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	TotalFaces       int                     `json:"total_faces_detected" example:"12"`
	Attendance       []AttendanceOutcomeData `json:"attendance"`
	PresentCount     int                     `json:"present_count" example:"10"`
	AbsentCount      int                     `json:"absent_count" example:"5"`
	Threshold        float64                 `json:"similarity_threshold" example:"0.4"`
	RecordsSaved     int                     `json:"records_saved" example:"15"`
	ProcessingTimeMS float64                 `json:"processing_time_ms" example:"231.5"`
}

// SaveAttendanceResponse reports persisted row count
type SaveAttendanceResponse struct {
	RecordsSaved int `json:"records_saved" example:"15"`
}

// TrainingStatusResponse represents an identity's training state
type TrainingStatusResponse struct {
	RosterID           string `json:"roster_id" example:"S12345"`
	Name               string `json:"name" example:"Alice Nguyen"`
	Trained            bool   `json:"trained" example:"true"`
	TrainingImageCount int    `json:"training_image_count" example:"3"`
	RecognitionEnabled bool   `json:"recognition_enabled" example:"true"`
}

// AttendanceHistoryRecord is one stored attendance row for a student
type AttendanceHistoryRecord struct {
	UserID     string  `json:"user_id" example:"S12345"`
	ClassID    string  `json:"class_id" example:"CS101"`
	Date       string  `json:"date" example:"2026-08-31"`
	Subject    string  `json:"subject" example:"Algorithms"`
	Status     string  `json:"status" example:"present"`
	Confidence float64 `json:"confidence" example:"0.87"`
}

// AttendanceHistoryResponse wraps a student's recent attendance rows
type AttendanceHistoryResponse struct {
	Records []AttendanceHistoryRecord `json:"records"`
	Total   int                       `json:"total" example:"12"`
}

// SystemStatsResponse represents the operational stats snapshot
type SystemStatsResponse struct {
	PersonsTotal   int     `json:"persons_total" example:"120"`
	GallerySize    int     `json:"gallery_size" example:"118"`
	GalleryAgeSecs float64 `json:"gallery_age_seconds" example:"42.1"`
	Threshold      float64 `json:"similarity_threshold" example:"0.4"`
	EmbeddingDim   int     `json:"embedding_dim" example:"512"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"VALIDATION_FAILED"`
	Message string `json:"message" example:"Request validation failed"`
}

// EmptyResponse represents no content response (204)
type EmptyResponse struct{}

func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "Presence Attendance API",
		Version:     "v1.0.0",
		Description: "Face-recognition attendance service: identity enrollment, class photo recognition and attendance persistence",
		Host:        "localhost:8000",
		Path:        "/v1",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /v1/enrollments - Train identity
		endpoint.New(
			endpoint.POST,
			"/enrollments",
			endpoint.WithTags("Enrollment"),
			endpoint.WithSummary("Enroll an identity from training images"),
			endpoint.WithDescription("Extracts one embedding per image, averages them into the identity's representative embedding. Re-enrolling an existing roster_id replaces the stored embedding."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EnrollResponse{}, "201", "Identity enrolled successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INVALID_IMAGE", Message: "Invalid image format or corrupted file"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "NO_USABLE_FACE_DATA", Message: "None of the submitted images yielded a usable face"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "EXTRACTOR_UNAVAILABLE", Message: "Face embedding service unavailable"}, "502", "Bad Gateway"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// POST /v1/recognitions - Attendance recognition
		endpoint.New(
			endpoint.POST,
			"/recognitions",
			endpoint.WithTags("Recognition"),
			endpoint.WithSummary("Run attendance recognition on a class photo"),
			endpoint.WithDescription("Matches every detected face against the enrolled gallery, reconciles against the class roster and upserts attendance rows. Re-submitting the same session updates rather than duplicates."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(RecognitionResponse{}, "200", "Recognition completed"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "EMPTY_GALLERY", Message: "No enrolled faces to match against"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "ROSTER_NOT_FOUND", Message: "No roster found for the requested class"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "EXTRACTOR_UNAVAILABLE", Message: "Face embedding service unavailable"}, "502", "Bad Gateway"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// POST /v1/attendance - Persist attendance outcomes
		endpoint.New(
			endpoint.POST,
			"/attendance",
			endpoint.WithTags("Attendance"),
			endpoint.WithSummary("Persist attendance outcomes"),
			endpoint.WithDescription("Stores previously computed attendance outcomes through the same idempotent upsert as the recognition pipeline."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SaveAttendanceResponse{}, "200", "Attendance saved"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "BAD_REQUEST", Message: "Invalid request"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /v1/persons/{roster_id}/training-status
		endpoint.New(
			endpoint.GET,
			"/persons/{roster_id}/training-status",
			endpoint.WithTags("Persons"),
			endpoint.WithSummary("Get training status for an identity"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("roster_id", parameter.Path, parameter.WithDescription("Student or employee identifier")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(TrainingStatusResponse{}, "200", "Training status retrieved"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "PERSON_NOT_FOUND", Message: "Person not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /v1/persons/search
		endpoint.New(
			endpoint.GET,
			"/persons/search",
			endpoint.WithTags("Persons"),
			endpoint.WithSummary("Search enrolled identities"),
			endpoint.WithDescription("Case-insensitive substring search over name and roster_id."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("q", parameter.Query, parameter.WithDescription("Search term")),
				parameter.IntParam("limit", parameter.Query, parameter.WithDescription("Maximum results (1-100, default 20)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EmptyResponse{}, "200", "Search completed"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /v1/persons/{roster_id}/attendance
		endpoint.New(
			endpoint.GET,
			"/persons/{roster_id}/attendance",
			endpoint.WithTags("Persons"),
			endpoint.WithSummary("List a student's recent attendance"),
			endpoint.WithDescription("Returns stored attendance rows for one student, newest first."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("roster_id", parameter.Path, parameter.WithDescription("Student or employee identifier")),
				parameter.IntParam("limit", parameter.Query, parameter.WithDescription("Maximum rows (1-200, default 50)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(AttendanceHistoryResponse{}, "200", "Attendance history retrieved"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// DELETE /v1/persons/{roster_id}
		endpoint.New(
			endpoint.DELETE,
			"/persons/{roster_id}",
			endpoint.WithTags("Persons"),
			endpoint.WithSummary("Delete an enrolled identity"),
			endpoint.WithDescription("Removes the identity and refreshes the gallery so the embedding stops matching immediately."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("roster_id", parameter.Path, parameter.WithDescription("Student or employee identifier")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EmptyResponse{}, "204", "Identity deleted"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "PERSON_NOT_FOUND", Message: "Person not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /v1/system/stats
		endpoint.New(
			endpoint.GET,
			"/system/stats",
			endpoint.WithTags("System"),
			endpoint.WithSummary("Operational statistics"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SystemStatsResponse{}, "200", "Stats retrieved"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
