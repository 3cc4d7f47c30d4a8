package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/covid-19/chart"
	"github.com/bitmark-inc/covid-19/schema"
)

// parseDateQuery - nil when the query is absent
func parseDateQuery(c *gin.Context, key string) (*time.Time, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	d, err := time.Parse(schema.DateLayout, v)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func parseIntQuery(c *gin.Context, key string) (*int, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *Server) newCases(c *gin.Context) {
	country := strings.ToUpper(c.Param("country"))

	start, err := parseDateQuery(c, "start")
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}
	end, err := parseDateQuery(c, "end")
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	data, err := s.pipeline.NewCases(country, start, end)
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorNewCases, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"country": data.Country,
		"cases":   data.Points(),
	})
}

func (s *Server) plot(c *gin.Context) {
	countries := s.countries
	if q := c.Query("countries"); q != "" {
		countries = nil
		for _, part := range strings.Split(q, ",") {
			cs, err := chart.ParseCountryScale(part)
			if err != nil {
				abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
				return
			}
			countries = append(countries, cs)
		}
	}

	start, err := parseDateQuery(c, "start")
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}
	smooth, err := parseIntQuery(c, "smooth")
	if err == nil && smooth != nil && *smooth <= 0 {
		err = fmt.Errorf("%w: smooth %d", chart.ErrInvalidOption, *smooth)
	}
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	aspect := chart.DefaultAspect
	if v := c.Query("aspect"); v != "" {
		aspect, err = strconv.ParseFloat(v, 64)
		if err == nil && aspect <= 0 {
			err = fmt.Errorf("%w: aspect %s", chart.ErrInvalidOption, v)
		}
		if err != nil {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
			return
		}
	}

	overlay, err := s.pipeline.CombinedPlot(countries, chart.CombinedOptions{
		Start:  start,
		Smooth: smooth,
		Aspect: aspect,
	})
	if errors.Is(err, chart.ErrNoSeries) {
		abortWithEncoding(c, http.StatusBadRequest, errorNoSeries, err)
		return
	}
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorNewCases, err)
		return
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, overlay, s.width); shouldInterupt(err, c) {
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) storedNewCases(c *gin.Context) {
	country := strings.ToUpper(c.Param("country"))

	start, err := parseDateQuery(c, "start")
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}
	end, err := parseDateQuery(c, "end")
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	data, err := s.mongoStore.NewCasesBetween(country, start, end)
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"country": data.Country,
		"cases":   data.Points(),
	})
}
