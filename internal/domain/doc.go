// Package domain holds the naming rules and error values of the image service.
// Keep this package free of transport (HTTP) and raster concerns.
package domain
