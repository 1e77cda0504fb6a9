package services

import "errors"

// Sentinel errors returned by the services. Controllers match them
// with errors.Is and map them to HTTP status codes.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrCourseNotFound     = errors.New("course not found")
)
