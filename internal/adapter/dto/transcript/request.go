package transcript

// UploadRequest represents the non-file fields of a transcript upload. The
// file itself arrives as the multipart "file" part.
type UploadRequest struct {
	Title string `form:"title" validate:"omitempty,max=500"`
}
