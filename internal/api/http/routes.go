package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/nimbusview/weather-backend/internal/geocode"
	"github.com/nimbusview/weather-backend/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, geocoder *geocode.Client) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/snapshot", func(c *fiber.Ctx) error {
		coords, err := parseCoordsQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		result, err := service.FetchSnapshot(c.UserContext(), coords.Lat, coords.Lon)
		if err != nil {
			if errors.Is(err, weather.ErrNoData) {
				return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
		}

		resp := fiber.Map{
			"status":   result.Status,
			"stale":    result.Stale(),
			"snapshot": result.Snapshot,
		}
		if result.Reason != "" {
			resp["reason"] = result.Reason
		}
		return c.JSON(resp)
	})

	v1.Get("/geocode/search", func(c *fiber.Ctx) error {
		query := c.Query("q")

		candidates, err := geocoder.Search(c.UserContext(), query)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "geocoding lookup failed")
		}
		return c.JSON(fiber.Map{
			"query":   query,
			"results": candidates,
		})
	})
}

// coordsQuery holds query parameters identifying a point on the globe.
type coordsQuery struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

func parseCoordsQuery(c *fiber.Ctx) (coordsQuery, error) {
	var q coordsQuery

	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		return q, errors.New("lat and lon query parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return q, errors.New("lat must be a number")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return q, errors.New("lon must be a number")
	}

	q.Lat = lat
	q.Lon = lon
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}
