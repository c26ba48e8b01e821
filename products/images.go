package products

import (
	"encoding/json"
	"fmt"
	"image/jpeg"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"arabianx/models"
	"arabianx/utils"

	"github.com/disintegration/imaging"
)

const productPicDir = "static/productpic"
const thumbDir = "static/productpic/thumb"
const thumbWidth = 200

// decodeProductForm reads a create-product request. JSON bodies carry the
// whole document; multipart bodies carry form fields plus an optional image
// file, which overrides any image URL in the form.
func decodeProductForm(w http.ResponseWriter, r *http.Request) (models.Product, bool) {
	var product models.Product

	if !isMultipart(r) {
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
			return product, false
		}
		return product, true
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart payload")
		return product, false
	}

	product.Name = r.FormValue("name")
	product.Brand = r.FormValue("brand")
	product.Description = r.FormValue("description")
	product.Image = r.FormValue("image")
	product.Category = r.FormValue("category")
	product.Gender = r.FormValue("gender")
	product.Size = r.FormValue("size")
	product.Concentration = r.FormValue("concentration")
	product.Family = r.FormValue("olfactoryFamily")
	product.Price, _ = strconv.ParseFloat(r.FormValue("price"), 64)
	product.Stock, _ = strconv.Atoi(r.FormValue("stock"))

	if notesJSON := r.FormValue("notes"); notesJSON != "" {
		if err := json.Unmarshal([]byte(notesJSON), &product.Notes); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid notes payload")
			return product, false
		}
	}

	if filename, ok, failed := saveUploadedImage(w, r); failed {
		return product, false
	} else if ok {
		product.Image = "/" + productPicDir + "/" + filename
	}

	return product, true
}

// parseMultipartUpdate returns the JSON-typed form fields of a multipart
// update request plus the stored path of an uploaded image, if any.
func parseMultipartUpdate(w http.ResponseWriter, r *http.Request) (map[string]json.RawMessage, string, bool) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart payload")
		return nil, "", false
	}

	fields := make(map[string]json.RawMessage)
	for key, values := range r.MultipartForm.Value {
		if len(values) == 0 {
			continue
		}
		fields[key] = formValueAsJSON(key, values[0])
	}

	image := ""
	if filename, ok, failed := saveUploadedImage(w, r); failed {
		return nil, "", false
	} else if ok {
		image = "/" + productPicDir + "/" + filename
	}

	return fields, image, true
}

// Numeric and structured fields arrive as plain form strings; re-encode them
// so the shared field decoders see the same JSON either way.
func formValueAsJSON(key, value string) json.RawMessage {
	switch key {
	case "price", "stock":
		return json.RawMessage(value)
	case "notes", "images":
		return json.RawMessage(value)
	default:
		quoted, _ := json.Marshal(value)
		return quoted
	}
}

// saveUploadedImage stores the "image" form file and generates a thumbnail.
// Returns (filename, hadFile, failed).
func saveUploadedImage(w http.ResponseWriter, r *http.Request) (string, bool, bool) {
	file, header, err := r.FormFile("image")
	if err != nil {
		return "", false, false // no file attached
	}
	defer file.Close()

	if !utils.ValidateImageFileType(w, header) {
		return "", false, true
	}

	filename, err := utils.SaveFile(file, header, productPicDir)
	if err != nil {
		log.Println("product image save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save image")
		return "", false, true
	}

	if err := generateThumbnail(filename); err != nil {
		log.Println("thumbnail error:", err)
	}

	return filename, true, false
}

func generateThumbnail(filename string) error {
	img, err := imaging.Open(filepath.Join(productPicDir, filename))
	if err != nil {
		return fmt.Errorf("open %s: %w", filename, err)
	}

	resized := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos) // keep aspect ratio
	name := strings.TrimSuffix(filename, filepath.Ext(filename)) + ".jpg"

	if err := os.MkdirAll(thumbDir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", thumbDir, err)
	}

	out, err := os.Create(filepath.Join(thumbDir, name))
	if err != nil {
		return fmt.Errorf("create thumbnail: %w", err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, resized, &jpeg.Options{Quality: 85}); err != nil {
		return fmt.Errorf("encode thumbnail: %w", err)
	}

	return nil
}
