package middleware

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"ImageVault/Models"
)

// LogData is one request log line.
type LogData struct {
	Timestamp time.Time     `json:"timestamp"`
	Method    string        `json:"method"`
	Path      string        `json:"path"`
	Status    int           `json:"status"`
	Latency   time.Duration `json:"latency"`
	IP        string        `json:"ip"`
	UserAgent string        `json:"user_agent"`
	UserID    interface{}   `json:"user_id,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// RequestLogger logs every request to the console and, when possible, to
// logs/requests.log as JSON lines.
func RequestLogger() fiber.Handler {
	if err := os.MkdirAll("logs", 0755); err != nil {
		log.Printf("Error creating logs directory: %v", err)
	}

	var file *os.File
	file, err := os.OpenFile("logs/requests.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Error opening request log file: %v", err)
		file = nil
	}

	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		data := LogData{
			Timestamp: start,
			Method:    c.Method(),
			Path:      c.Path(),
			Status:    c.Response().StatusCode(),
			Latency:   time.Since(start),
			IP:        c.IP(),
			UserAgent: c.Get("User-Agent"),
		}
		if err != nil {
			data.Error = err.Error()
		}
		if user, ok := c.Locals("user").(Models.User); ok {
			data.UserID = user.ID
		}

		log.Printf("%s %s -> %d (%s)", data.Method, data.Path, data.Status, data.Latency)

		if file != nil {
			if line, marshalErr := json.Marshal(data); marshalErr == nil {
				file.Write(append(line, '\n'))
			}
		}

		return err
	}
}
