// Command example serves the channels of a color over HTTP. A channel is
// selected by its index, which namedarray maps to a field of RGB:
//
//	go generate
//	go run .
//	curl localhost:8080/channel/0
//	curl -X PUT -d '{"value":64}' -H 'Content-Type: application/json' localhost:8080/channel/2
package main

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"
)

//go:generate go tool namedarray .

// RGB is a color with 8-bit channels.
//
//namedarray:derive
type RGB struct {
	R, G, B uint8
}

type channel struct {
	Index int   `json:"index"`
	Value uint8 `json:"value"`
}

type server struct {
	mu    sync.Mutex
	color RGB
}

func (s *server) getChannel(c echo.Context) error {
	index, err := s.index(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, channel{Index: index, Value: s.color.At(index)})
}

func (s *server) putChannel(c echo.Context) error {
	index, err := s.index(c)
	if err != nil {
		return err
	}

	var req channel
	if err := c.Bind(&req); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	*s.color.Ptr(index) = req.Value
	return c.JSON(http.StatusOK, channel{Index: index, Value: s.color.At(index)})
}

// index parses the channel index in the path. The accessors panic for an
// index out of bounds, so it is checked here.
func (s *server) index(c echo.Context) (int, error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 || index >= s.color.Len() {
		return 0, echo.NewHTTPError(http.StatusNotFound, "no such channel")
	}
	return index, nil
}

func main() {
	s := &server{color: RGB{R: 255, G: 128, B: 0}}

	e := echo.New()
	e.GET("/channel/:index", s.getChannel)
	e.PUT("/channel/:index", s.putChannel)
	e.Logger.Fatal(e.Start(":8080"))
}
