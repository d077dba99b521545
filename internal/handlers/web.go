package handlers

import (
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Munnjee/Comp2537-A01/internal/auth"
	"github.com/Munnjee/Comp2537-A01/internal/service"
	"github.com/Munnjee/Comp2537-A01/internal/validate"

	"github.com/gin-gonic/gin"
)

// imageFiles is the fixed asset set; imagesByID maps /image/:id to an asset,
// anything unmapped falls back to defaultImage.
var imageFiles = []string{"cat.gif", "cat2.gif", "doge.gif", "doge2.gif"}

var imagesByID = map[string]string{
	"1": imageFiles[0],
	"2": imageFiles[1],
	"3": imageFiles[2],
}

const defaultImage = "doge2.gif"

// WebHandler serves the site pages and static assets.
type WebHandler struct {
	users     *service.UserService
	publicDir string
}

// NewWebHandler returns a new WebHandler serving assets from publicDir.
func NewWebHandler(users *service.UserService, publicDir string) *WebHandler {
	return &WebHandler{users: users, publicDir: publicDir}
}

// Home greets by session state: members get their name and the members-area
// link, everyone else gets signup/login buttons.
func (h *WebHandler) Home(c *gin.Context) {
	rec := auth.Current(c)
	if rec != nil && rec.Authenticated {
		c.HTML(http.StatusOK, "home.tmpl", gin.H{"Authenticated": true, "Name": rec.Name})
		return
	}
	c.HTML(http.StatusOK, "home.tmpl", gin.H{"Authenticated": false})
}

// Members shows a random image to logged-in users. RequireMember guards the
// route, so a session name is always present here.
func (h *WebHandler) Members(c *gin.Context) {
	rec := auth.Current(c)
	img := imageFiles[rand.Intn(len(imageFiles))]
	c.HTML(http.StatusOK, "members.tmpl", gin.H{"Name": rec.Name, "Src": "/" + img})
}

// Image maps an id to its asset via the lookup table.
func (h *WebHandler) Image(c *gin.Context) {
	img, ok := imagesByID[c.Param("id")]
	if !ok {
		img = defaultImage
	}
	c.HTML(http.StatusOK, "image.tmpl", gin.H{"Src": "/" + img})
}

// Injection is the demonstration endpoint: the user parameter is screened as
// a plain scalar before any lookup, so a structured value like user[$ne]=x
// never reaches the store.
func (h *WebHandler) Injection(c *gin.Context) {
	name, err := validate.Scalar(c.Request.URL.Query(), "user")
	if err != nil {
		if errors.Is(err, validate.ErrInjectionAttempt) {
			log.Printf("nosql-injection: structured value rejected")
		} else {
			log.Printf("nosql-injection: %v", err)
		}
		c.HTML(http.StatusOK, "injection_detected.tmpl", nil)
		return
	}
	if name == "" {
		c.HTML(http.StatusOK, "injection_hint.tmpl", nil)
		return
	}

	matches, err := h.users.LookupByName(c.Request.Context(), name)
	if err != nil {
		log.Printf("nosql-injection lookup: %v", err)
		c.String(http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}
	log.Printf("nosql-injection: %d matches for %q", len(matches), name)
	c.HTML(http.StatusOK, "hello.tmpl", gin.H{"Name": name})
}

// Health is a liveness probe.
func (h *WebHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// NotFound serves static assets for unmatched GET paths and the 404 page for
// everything else.
func (h *WebHandler) NotFound(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		name := strings.TrimPrefix(path.Clean(c.Request.URL.Path), "/")
		if name != "" && !strings.Contains(name, "..") {
			full := filepath.Join(h.publicDir, filepath.FromSlash(name))
			if st, err := os.Stat(full); err == nil && !st.IsDir() {
				c.File(full)
				return
			}
		}
	}
	c.HTML(http.StatusNotFound, "notfound.tmpl", nil)
}
