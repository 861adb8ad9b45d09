// Package docs publica la descripción OpenAPI de la API.
package docs

import (
	_ "embed"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/swaggo/swag"
)

//go:embed swagger.json
var swaggerJSON string

// SwaggerInfo metadatos de la API registrados en swag.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Registro de Clientes API",
	Description:      "Registro de clientes en memoria con bitácora de auditoría persistente.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  swaggerJSON,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// DocJSON GET /docs/doc.json: documento registrado en swag.
func DocJSON(c *fiber.Ctx) error {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.SendString(doc)
}

// UI Swagger UI en /docs a partir del archivo filePath.
func UI(filePath, title string) fiber.Handler {
	return swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: filePath,
		Path:     "docs",
		Title:    title,
	})
}
