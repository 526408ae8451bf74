package transcriptions

import "github.com/labstack/echo/v4"

type Handler interface {
	Transcribe() echo.HandlerFunc
	ListTranscriptions() echo.HandlerFunc
}
