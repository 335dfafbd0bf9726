package service

import "github.com/gofiber/fiber/v2"

// Sentinel errors shared across services. They are fiber errors so the
// central handler maps them to a status without extra plumbing.
var (
	ErrSessionNotFound   = fiber.NewError(fiber.StatusNotFound, "session not found")
	ErrCandidateNotFound = fiber.NewError(fiber.StatusNotFound, "candidate not found")
)
