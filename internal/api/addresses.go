package api

import (
	"net/http" // HTTP status codes

	"cloudkitchen/internal/domain"     // Address model
	"cloudkitchen/internal/middleware" // Session context accessors
	"cloudkitchen/internal/upstream"   // Upstream API client

	"github.com/gin-gonic/gin" // Gin web framework
)

// ListAddressesHandler returns the user's saved addresses
func ListAddressesHandler(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		addrs, err := api.Addresses(c.Request.Context(), middleware.Token(c)) // Fetch addresses
		if err != nil {
			failUpstream(c, err, "Failed to load addresses") // Surface failure, list stays empty
			return
		}
		// Pick the default for convenience; the upstream keeps at most one
		var defaultID string
		for _, a := range addrs {
			if a.IsDefault {
				defaultID = a.ID
				break
			}
		}
		c.JSON(http.StatusOK, gin.H{"addresses": addrs, "defaultId": defaultID})
	}
}

// validateAddress checks the fields the form requires before forwarding
func validateAddress(a domain.Address) string {
	switch {
	case a.FullName == "":
		return "Full name is required"
	case a.Phone == "":
		return "Phone is required"
	case a.Line1 == "":
		return "Address line is required"
	case a.City == "":
		return "City is required"
	case a.State == "":
		return "State is required"
	case a.PostalCode == "":
		return "Postal code is required"
	}
	return ""
}

// CreateAddressHandler saves a new address
func CreateAddressHandler(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var a domain.Address // Bind JSON request to the model
		if err := c.ShouldBindJSON(&a); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate required fields
		if msg := validateAddress(a); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}
		a.ID = "" // The upstream assigns ids
		created, err := api.CreateAddress(c.Request.Context(), middleware.Token(c), a)
		if err != nil {
			failUpstream(c, err, "Save failed")
			return
		}
		// If the new address is the default, the upstream demotes the previous one
		c.JSON(http.StatusCreated, gin.H{"address": created})
	}
}

// UpdateAddressHandler updates an existing address
func UpdateAddressHandler(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var a domain.Address // Bind JSON request to the model
		if err := c.ShouldBindJSON(&a); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate required fields
		if msg := validateAddress(a); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}
		if err := api.UpdateAddress(c.Request.Context(), middleware.Token(c), c.Param("id"), a); err != nil {
			failUpstream(c, err, "Update failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Address updated"})
	}
}

// DeleteAddressHandler removes an address
func DeleteAddressHandler(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := api.DeleteAddress(c.Request.Context(), middleware.Token(c), c.Param("id")); err != nil {
			failUpstream(c, err, "Delete failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
	}
}

// SetDefaultAddressHandler marks an address as the default; the upstream
// demotes the previous default so at most one remains.
func SetDefaultAddressHandler(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := api.SetDefaultAddress(c.Request.Context(), middleware.Token(c), c.Param("id")); err != nil {
			failUpstream(c, err, "Could not set default")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Default address set"})
	}
}
