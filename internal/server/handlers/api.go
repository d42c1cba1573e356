package handlers

import (
	"context"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/build"
	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/deploy"
	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/generator"
	"git.home.luguber.info/inful/sitebuilder/internal/inventory"
	"git.home.luguber.info/inful/sitebuilder/internal/server/responses"
	"git.home.luguber.info/inful/sitebuilder/internal/version"
)

// MaxDescriptorBytes bounds the size of an uploaded or posted site descriptor.
const MaxDescriptorBytes = 10 << 20

// Fixed response messages.
const (
	SitesMessage          = "Available sites retrieved successfully"
	DeploymentInfoMessage = "Built sites include configuration files for all major platforms"
	SectionTypesMessage   = "Supported section types for site generation"
)

// SiteGenerator is the part of generator.Generator the API needs.
type SiteGenerator interface {
	Generate(ctx context.Context, desc *content.SiteDescriptor) (*generator.Result, error)
}

// SiteInventory is the part of inventory.Inventory the API needs.
type SiteInventory interface {
	ListAvailableSites() ([]string, error)
	BuildStatus(siteName string) (*inventory.Status, error)
}

// APIHandlers serves the generate, build and inventory endpoints.
type APIHandlers struct {
	generator    SiteGenerator
	builder      build.Builder
	inventory    SiteInventory
	errorAdapter *errors.HTTPErrorAdapter
	now          func() time.Time
}

// NewAPIHandlers creates a new API handlers instance.
func NewAPIHandlers(gen SiteGenerator, builder build.Builder, inv SiteInventory) *APIHandlers {
	return &APIHandlers{
		generator:    gen,
		builder:      builder,
		inventory:    inv,
		errorAdapter: errors.NewHTTPErrorAdapter(slog.Default()),
		now:          time.Now,
	}
}

// HandleGenerate accepts a site descriptor as a multipart "file" upload or as the request body
// and generates the site.
func (h *APIHandlers) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxDescriptorBytes)
	desc, err := h.readDescriptor(r)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	res, err := h.generator.Generate(r.Context(), desc)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	h.write(w, r, res)
}

func (h *APIHandlers) readDescriptor(r *http.Request) (*content.SiteDescriptor, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return readUpload(r)
	}
	format := content.FormatJSON
	if strings.Contains(mediaType, "yaml") {
		format = content.FormatYAML
	}
	return content.Decode(r.Body, format)
}

func readUpload(r *http.Request) (*content.SiteDescriptor, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "multipart field 'file' is required").Build()
	}
	defer func() { _ = file.Close() }()

	if header.Size == 0 {
		return nil, errors.ValidationError("file cannot be empty").Build()
	}
	format, ok := content.FormatForPath(header.Filename)
	if !ok {
		return nil, errors.ValidationError("file must be a JSON or YAML file").
			WithContext("file", filepath.Base(header.Filename)).
			Build()
	}
	return content.Decode(io.LimitReader(file, MaxDescriptorBytes), format)
}

// HandleBuild builds the site named by the siteName query parameter.
func (h *APIHandlers) HandleBuild(w http.ResponseWriter, r *http.Request) {
	res, err := h.builder.Build(r.Context(), r.URL.Query().Get("siteName"))
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	h.write(w, r, res)
}

// HandleSites lists the generated sites.
func (h *APIHandlers) HandleSites(w http.ResponseWriter, r *http.Request) {
	sites, err := h.inventory.ListAvailableSites()
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	h.write(w, r, &responses.SitesResponse{Sites: sites, Count: len(sites), Message: SitesMessage})
}

// HandleStatus reports the build status of the site in the path.
func (h *APIHandlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	st, err := h.inventory.BuildStatus(r.PathValue("siteName"))
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	h.write(w, r, st)
}

// HandleHealth reports that the service is up.
func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, &responses.HealthResponse{
		Status:    "UP",
		Service:   version.ServiceName,
		Version:   version.Version,
		Timestamp: h.now().UnixMilli(),
	})
}

// HandleDeploymentInfo lists the hosting platforms built sites carry configuration for.
func (h *APIHandlers) HandleDeploymentInfo(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, &responses.DeploymentInfoResponse{
		SupportedPlatforms: deploy.PlatformSummaries(),
		Message:            DeploymentInfoMessage,
	})
}

// HandleSectionTypes lists the section types a descriptor may use.
func (h *APIHandlers) HandleSectionTypes(w http.ResponseWriter, r *http.Request) {
	types := content.SupportedSectionTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	h.write(w, r, &responses.SectionTypesResponse{SupportedTypes: names, Description: SectionTypesMessage})
}

func (h *APIHandlers) write(w http.ResponseWriter, r *http.Request, v any) {
	if err := writeJSONPretty(w, r, http.StatusOK, v); err != nil {
		internalErr := errors.WrapError(err, errors.CategoryInternal, "failed to write response").
			WithContext("path", r.URL.Path).
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, internalErr)
	}
}
