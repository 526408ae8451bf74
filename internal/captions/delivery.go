package captions

import "github.com/labstack/echo/v4"

type Handler interface {
	Generate() echo.HandlerFunc
	GetStatus() echo.HandlerFunc
	Preview() echo.HandlerFunc
	Download() echo.HandlerFunc
}
