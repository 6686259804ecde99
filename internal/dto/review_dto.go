package dto

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Mode  string `json:"mode"`
}

type SetModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=legal creator"`
}

// UploadRequest is assembled by the controller from the multipart form and
// the per-request session context.
type UploadRequest struct {
	FilePath  string
	FileName  string
	UserEmail string `validate:"required,email"`
	Mode      string `validate:"required,oneof=legal creator"`
}

// UploadResult carries the outcome the boundary reports to the caller.
type UploadResult struct {
	RunID       string
	CompanyName string
	Message     string
}
