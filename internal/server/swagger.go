package server

//go:generate swag init -g internal/server/swagger.go -o docs/swagger --parseInternal

// @title DevBrowser API
// @version 1.0
// @description Backend for the DevBrowser companion: tab/bookmark/history persistence and URL security analysis.
// @contact.name DevBrowser Maintainers
// @BasePath /api
