package export

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"net/http"

	"ficha-generator/models"
	"ficha-generator/services"
)

//go:embed templates/*.html
var templateFS embed.FS

// templateData binds a NormalizedView plus the resolved images to the
// document template slots. A fresh value is built per export so no section
// can leak stale content from a previous run.
type templateData struct {
	View  *models.NormalizedView
	Facts []models.Fact

	// Hero and Tiles are data URIs produced by the ImageResolver. An empty
	// entry renders as a blank placeholder, not as a broken external URL.
	Hero  template.URL
	Tiles []template.URL
}

func newTemplateData(view *models.NormalizedView) *templateData {
	gastos := services.FallbackND
	if view.GastosComunes != services.FallbackND {
		gastos = "$ " + view.GastosComunes
	}

	return &templateData{
		View: view,
		Facts: []models.Fact{
			{Label: "Programa", Value: view.Programa},
			{Label: "Superficie útil", Value: view.M2Utile + " m²"},
			{Label: "Superficie total", Value: view.M2Total + " m²"},
			{Label: "Superficie terraza", Value: view.M2Terraza + " m²"},
			{Label: "Estac / Bodegas", Value: view.Estacionamientos + " estac · " + view.Bodegas + " bod"},
			{Label: "Gastos comunes aprox.", Value: gastos},
			{Label: "Orientación", Value: view.Orientacion},
			{Label: "Piso", Value: view.Piso},
			{Label: "Antigüedad", Value: view.Antiguedad},
		},
	}
}

// renderTemplate parses and executes one of the embedded document layouts.
func renderTemplate(name string, data *templateData) ([]byte, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// pageTemplate centers the captured raster on a single A4 page, scaled
// uniformly to fit.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  @page { size: A4; margin: 0; }
  html, body { margin: 0; padding: 0; }
  body { width: 210mm; height: 297mm; display: flex; align-items: center; justify-content: center; }
  img { width: {{.Width}}px; height: {{.Height}}px; }
</style>
</head>
<body><img src="{{.Src}}" alt=""></body>
</html>
`))

type pageData struct {
	Src    template.URL
	Width  int
	Height int
}

// rasterDataURI inlines the captured raster so the wrapper page needs no
// file references.
func rasterDataURI(raster []byte) template.URL {
	return template.URL("data:" + http.DetectContentType(raster) + ";base64," +
		base64.StdEncoding.EncodeToString(raster))
}

func renderPage(data pageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute page template: %w", err)
	}
	return buf.Bytes(), nil
}
