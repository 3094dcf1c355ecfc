// Package main provides the entry point of MediBoard, the admin backend of the
// hospital slideshow and eCatalog displays. It serves one JSON route table over
// fiber for long running deployments; api/index.go serves the same table as a
// serverless function. Data lives in postgres, mysql or sqlite through gorm.
package main
