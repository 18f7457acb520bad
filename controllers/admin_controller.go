// File: controllers/admin_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wanderlust/logger"
	"wanderlust/middleware"
	"wanderlust/services"
	"wanderlust/session"
	"wanderlust/websocket"
)

// change event actions
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ---------------- Admin Controller ----------------

// AdminController serves the admin dashboard. Each browser session works on its own store,
// obtained from the AdminSessions registry.
type AdminController struct {
	Sessions  *services.AdminSessions
	Messenger websocket.Messenger
	Hub       *websocket.Hub
}

func NewAdminController(sessions *services.AdminSessions, hub *websocket.Hub) *AdminController {
	var messenger websocket.Messenger = websocket.NopMessenger{}
	if hub != nil {
		messenger = websocket.HubMessenger{Hub: hub}
	}
	return &AdminController{Sessions: sessions, Messenger: messenger, Hub: hub}
}

// tokenSessionPrefix keys the admin shells of bearer-token callers, which keep no cookies.
const tokenSessionPrefix = "token:"

// shell returns this caller's admin shell, creating it on first use. Browsers are keyed by the
// id kept in their session; token callers by their username.
func (ac *AdminController) shell(c *gin.Context) (*services.Shell, bool) {
	if middleware.AuthenticatedByToken(c) {
		who, _ := middleware.CurrentIdentity(c)
		return ac.Sessions.Acquire(tokenSessionPrefix + who.Username), true
	}
	id, err := session.AdminSessionID(c, uuid.NewString)
	if err != nil {
		logger.Error.Printf("[AdminController] failed to save admin session id: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": services.MsgTryAgain})
		return nil, false
	}
	return ac.Sessions.Acquire(id), true
}

func (ac *AdminController) notify(c *gin.Context, collection, action, id string) {
	who, _ := middleware.CurrentIdentity(c)
	ac.Messenger.NotifyCollectionChanged(collection, action, id, who.Username)
}

// ---------------- admin panel ----------------

// AdminPanel renders the dashboard on the tab named by ?tab= (dashboard by default).
// Destinations are shown through the search and amenity filters.
func (ac *AdminController) AdminPanel(c *gin.Context) {
	tabName := c.DefaultQuery("tab", string(services.TabDashboard))
	tab, err := services.ParseTab(tabName)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	shell, ok := ac.shell(c)
	if !ok {
		return
	}

	data := gin.H{"Tabs": services.Tabs, "Active": tab}
	if err := shell.SwitchTab(c.Request.Context(), tab); err != nil {
		logger.Warn.Printf("AdminPanel: loading %s: %v", tab, err)
		data["Error"] = err.Error()
	}

	destinations := shell.Store.Destinations.Snapshot()
	search, amenity := c.Query("search"), c.Query("amenity")
	data["Counts"] = shell.Dashboard()
	data["Destinations"] = destinations
	data["Filtered"] = services.FilterDestinations(destinations.Items, search, amenity)
	data["Amenities"] = services.Amenities(destinations.Items)
	data["Search"] = search
	data["Amenity"] = amenity
	data["Users"] = shell.Store.Users.Snapshot()
	data["Bookings"] = shell.Store.Bookings.Snapshot()

	c.HTML(http.StatusOK, "admin.html", data)
}

// Dashboard returns the counts of records currently held. It never fetches.
func (ac *AdminController) Dashboard(c *gin.Context) {
	shell, ok := ac.shell(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"activeTab": shell.ActiveTab(),
		"counts":    shell.Dashboard(),
		"states": gin.H{
			services.CollectionDestinations: shell.Store.Destinations.State(),
			services.CollectionUsers:        shell.Store.Users.State(),
			services.CollectionBookings:     shell.Store.Bookings.State(),
		},
	})
}

// SwitchTab changes the active tab and loads whatever it shows that was never loaded.
func (ac *AdminController) SwitchTab(c *gin.Context) {
	tab, err := services.ParseTab(c.Param("tab"))
	if err != nil {
		respondError(c, err)
		return
	}
	shell, ok := ac.shell(c)
	if !ok {
		return
	}
	if err := shell.SwitchTab(c.Request.Context(), tab); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activeTab": tab, "counts": shell.Dashboard()})
}

// Refresh refetches one collection and returns its state and records. For destinations the
// search and amenity parameters filter the returned records.
func (ac *AdminController) Refresh(c *gin.Context) {
	shell, ok := ac.shell(c)
	if !ok {
		return
	}
	collection := c.Param("collection")
	if err := shell.Refresh(c.Request.Context(), collection); err != nil {
		respondError(c, err)
		return
	}

	switch collection {
	case services.CollectionDestinations:
		snap := shell.Store.Destinations.Snapshot()
		snap.Items = services.FilterDestinations(snap.Items, c.Query("search"), c.Query("amenity"))
		c.JSON(http.StatusOK, snap)
	case services.CollectionUsers:
		c.JSON(http.StatusOK, shell.Store.Users.Snapshot())
	case services.CollectionBookings:
		c.JSON(http.StatusOK, shell.Store.Bookings.Snapshot())
	}
}

// ---------------- destinations ----------------

func (ac *AdminController) CreateDestination(c *gin.Context) {
	var in services.DestinationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	shell, ok := ac.shell(c)
	if !ok {
		return
	}
	d, err := shell.Store.CreateDestination(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	ac.notify(c, services.CollectionDestinations, ActionCreated, d.ID)
	c.JSON(http.StatusCreated, d)
}

func (ac *AdminController) UpdateDestination(c *gin.Context) {
	var p services.DestinationPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		respondBindError(c, err)
		return
	}
	shell, ok := ac.shell(c)
	if !ok {
		return
	}
	d, err := shell.Store.UpdateDestination(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		respondError(c, err)
		return
	}
	ac.notify(c, services.CollectionDestinations, ActionUpdated, d.ID)
	c.JSON(http.StatusOK, d)
}

func (ac *AdminController) DeleteDestination(c *gin.Context) {
	ac.delete(c, services.CollectionDestinations, func(s *services.AdminStore, id string) error {
		return s.DeleteDestination(c.Request.Context(), id)
	})
}

// ---------------- users ----------------

func (ac *AdminController) CreateUser(c *gin.Context) {
	var in services.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	shell, ok := ac.shell(c)
	if !ok {
		return
	}
	u, err := shell.Store.CreateUser(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	ac.notify(c, services.CollectionUsers, ActionCreated, u.ID)
	c.JSON(http.StatusCreated, u)
}

func (ac *AdminController) UpdateUser(c *gin.Context) {
	var p services.UserPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		respondBindError(c, err)
		return
	}
	shell, ok := ac.shell(c)
	if !ok {
		return
	}
	u, err := shell.Store.UpdateUser(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		respondError(c, err)
		return
	}
	ac.notify(c, services.CollectionUsers, ActionUpdated, u.ID)
	c.JSON(http.StatusOK, u)
}

func (ac *AdminController) DeleteUser(c *gin.Context) {
	ac.delete(c, services.CollectionUsers, func(s *services.AdminStore, id string) error {
		return s.DeleteUser(c.Request.Context(), id)
	})
}

// ---------------- bookings ----------------

func (ac *AdminController) UpdateBooking(c *gin.Context) {
	var p services.BookingPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		respondBindError(c, err)
		return
	}
	shell, ok := ac.shell(c)
	if !ok {
		return
	}
	b, err := shell.Store.UpdateBooking(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		respondError(c, err)
		return
	}
	ac.notify(c, services.CollectionBookings, ActionUpdated, b.ID)
	c.JSON(http.StatusOK, b)
}

func (ac *AdminController) DeleteBooking(c *gin.Context) {
	ac.delete(c, services.CollectionBookings, func(s *services.AdminStore, id string) error {
		return s.DeleteBooking(c.Request.Context(), id)
	})
}

func (ac *AdminController) delete(c *gin.Context, collection string, del func(*services.AdminStore, string) error) {
	shell, ok := ac.shell(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if err := del(shell.Store, id); err != nil {
		respondError(c, err)
		return
	}
	ac.notify(c, collection, ActionDeleted, id)
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// ---------------- live updates ----------------

// Updates upgrades to a websocket that receives change events from every admin.
func (ac *AdminController) Updates(c *gin.Context) {
	if ac.Hub == nil {
		c.String(http.StatusNotFound, "live updates disabled")
		return
	}
	who, _ := middleware.CurrentIdentity(c)
	ac.Hub.ServeWs(c.Writer, c.Request, who.Username)
}
