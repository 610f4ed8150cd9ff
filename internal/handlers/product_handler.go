package handlers

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"catalogo/internal/repositories"
	"catalogo/internal/services"
	"catalogo/internal/validation"
)

const (
	msgProductNotFound   = "Producto no encontrado"
	msgInternalError     = "Error interno del servidor"
	msgIDMustBeInt       = "ID debe ser un número entero"
	msgNameRequired      = "Nombre de producto obligatorio"
	msgPriceMustBeNumber = "El precio debe ser un número"
	msgPriceRequired     = "Precio de producto obligatorio"
	msgPriceMustBePos    = "El precio debe ser mayor a 0"
	msgAvailabilityBool  = "Información de disponibilidad no válido"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	productService *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// RegisterRoutes registers the product routes with the Fiber app. Each
// mutating route gets its validation chain followed by the input-error
// gate, so no handler runs on invalid input.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	idRule := func() *validation.Rule {
		return validation.Param("id").IsInt(msgIDMustBeInt)
	}
	nameRule := func() *validation.Rule {
		return validation.Body("name").NotEmpty(msgNameRequired)
	}
	priceRule := func() *validation.Rule {
		return validation.Body("price").
			IsNumeric(msgPriceMustBeNumber).
			NotEmpty(msgPriceRequired).
			Custom(priceIsPositive, msgPriceMustBePos)
	}

	router.Get("/", h.HandleList)

	router.Get("/:id",
		validation.Validate(idRule()),
		validation.HandleInputErrors,
		h.HandleGetByID)

	router.Post("/",
		validation.Validate(nameRule(), priceRule()),
		validation.HandleInputErrors,
		h.HandleCreate)

	router.Put("/:id",
		validation.Validate(
			idRule(),
			nameRule(),
			priceRule(),
			validation.Body("availability").IsBoolean(msgAvailabilityBool),
		),
		validation.HandleInputErrors,
		h.HandleUpdate)

	router.Patch("/:id",
		validation.Validate(idRule()),
		validation.HandleInputErrors,
		h.HandleToggleAvailability)

	router.Delete("/:id",
		validation.Validate(idRule()),
		validation.HandleInputErrors,
		h.HandleDelete)
}

func priceIsPositive(value interface{}) bool {
	n, ok := validation.AsNumber(value)
	return ok && n > 0
}

// HandleList returns every product ordered by id.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	products, err := h.productService.GetAllProducts()
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return internalError(c)
	}
	return c.JSON(fiber.Map{"data": products})
}

// HandleGetByID returns a single product, or 404 if the id has no record.
func (h *ProductHandler) HandleGetByID(c *fiber.Ctx) error {
	product, err := h.productService.GetProductByID(pathID(c))
	if err != nil {
		return notFoundOrInternal(c, err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleCreate creates a new product from the validated body. Field values
// are coerced the same way the validation chain read them, so a numeric
// string price that passed validation is accepted here too.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	body := parseBody(c)
	price, _ := validation.AsNumber(body["price"])

	product, err := h.productService.CreateProduct(validation.AsString(body["name"]), price)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": product})
}

// HandleUpdate replaces name, price and availability of an existing product.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	body := parseBody(c)
	price, _ := validation.AsNumber(body["price"])
	availability, _ := validation.AsBool(body["availability"])

	product, err := h.productService.UpdateProduct(pathID(c), validation.AsString(body["name"]), price, availability)
	if err != nil {
		return notFoundOrInternal(c, err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleToggleAvailability flips the availability flag of a product.
func (h *ProductHandler) HandleToggleAvailability(c *fiber.Ctx) error {
	product, err := h.productService.ToggleAvailability(pathID(c))
	if err != nil {
		return notFoundOrInternal(c, err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleDelete removes a product and returns its pre-deletion snapshot.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	product, err := h.productService.DeleteProduct(pathID(c))
	if err != nil {
		return notFoundOrInternal(c, err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// parseBody decodes the JSON request body the same way the validation
// middleware did.
func parseBody(c *fiber.Ctx) map[string]interface{} {
	body := map[string]interface{}{}
	if len(c.Body()) > 0 {
		_ = json.Unmarshal(c.Body(), &body)
	}
	return body
}

// pathID reads the :id parameter. The validation chain already guaranteed
// it parses as an integer.
func pathID(c *fiber.Ctx) uint {
	id, _ := c.ParamsInt("id")
	return uint(id)
}

func notFoundOrInternal(c *fiber.Ctx, err error) error {
	if errors.Is(err, repositories.ErrProductNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": msgProductNotFound,
		})
	}
	log.Printf("Error handling product request: %v", err)
	return internalError(c)
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": msgInternalError,
	})
}
