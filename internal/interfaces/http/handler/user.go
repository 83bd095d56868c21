package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	appidentity "github.com/audiozoom/backend/internal/application/identity"
	"github.com/audiozoom/backend/internal/domain/identity"
	"github.com/gin-gonic/gin"
)

// UserHandler serves profiles, creator pages and profile sub-resources
type UserHandler struct {
	BaseHandler
	profileService *appidentity.ProfileService
	maxImageSize   int64
}

// NewUserHandler creates a new user handler
func NewUserHandler(profileService *appidentity.ProfileService, maxImageSize int64) *UserHandler {
	return &UserHandler{profileService: profileService, maxImageSize: maxImageSize}
}

// GetMe godoc
// @Summary      Get the caller's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=appidentity.UserProfile}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// UpdateProfile godoc
// @Summary      Update the caller's profile
// @Description  Multipart form. requestsInfo and customColors are JSON strings; malformed values are ignored.
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name formData string false "Name"
// @Param        bio formData string false "Bio"
// @Param        displayName formData string false "Display name"
// @Param        location formData string false "Location"
// @Param        profession formData string false "Profession"
// @Param        profileTheme formData string false "default, dark, light or colorful"
// @Param        acceptsRequests formData string false "true or false"
// @Param        requestsInfo formData string false "JSON object"
// @Param        customColors formData string false "JSON object"
// @Param        picture formData file false "Profile picture (image, 5MB max)"
// @Success      200 {object} dto.Response{data=appidentity.UserProfile}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users/profile [patch]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	picture, file, err := formFile(c, fileRule{Field: "picture", ContentPrefix: imageContentPrefix, MaxSize: h.maxImageSize})
	if err != nil && !errors.Is(err, errMultipartForm) {
		h.HandleError(c, err)
		return
	}
	if file != nil {
		defer file.Close()
	}

	input := appidentity.UpdateProfileInput{
		ProfileUpdate: profileUpdateFromForm(c),
		Picture:       picture,
	}
	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

func profileUpdateFromForm(c *gin.Context) identity.ProfileUpdate {
	var update identity.ProfileUpdate
	formString := func(key string) *string {
		if v, ok := c.GetPostForm(key); ok {
			return &v
		}
		return nil
	}
	update.Name = formString("name")
	update.Bio = formString("bio")
	update.DisplayName = formString("displayName")
	update.Location = formString("location")
	update.Profession = formString("profession")
	if theme := formString("profileTheme"); theme != nil && *theme != "" {
		t := identity.ProfileTheme(*theme)
		update.ProfileTheme = &t
	}
	if accepts := formString("acceptsRequests"); accepts != nil {
		v := *accepts == "true"
		update.AcceptsRequests = &v
	}
	if raw := formString("customColors"); raw != nil {
		var colors identity.CustomColors
		if json.Unmarshal([]byte(*raw), &colors) == nil {
			update.CustomColors = &colors
		}
	}
	if raw := formString("requestsInfo"); raw != nil {
		var req RequestsInfoRequest
		if json.Unmarshal([]byte(*raw), &req) == nil {
			if info, err := req.toUpdate(); err == nil {
				update.RequestsInfo = &info
			}
		}
	}
	return update
}

// Featured godoc
// @Summary      List featured creators
// @Description  Users with at least one recording, most recordings first
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=[]appidentity.FeaturedCreator}
// @Router       /users/featured [get]
func (h *UserHandler) Featured(c *gin.Context) {
	creators, err := h.profileService.FeaturedCreators(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, creators)
}

// Search godoc
// @Summary      Search users by name or display name
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        query query string true "Search text"
// @Success      200 {object} dto.Response{data=[]appidentity.SearchResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users/search [get]
func (h *UserHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		h.BadRequest(c, "Search query is required")
		return
	}
	results, err := h.profileService.Search(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}

// GetPublicProfile godoc
// @Summary      Get a creator page
// @Description  Looks the user up by id, then by display name
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userId path string true "User id or display name"
// @Success      200 {object} dto.Response{data=appidentity.PublicProfile}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users/{userId} [get]
func (h *UserHandler) GetPublicProfile(c *gin.Context) {
	viewerID, _ := getUserID(c)
	profile, err := h.profileService.GetPublicProfile(c.Request.Context(), viewerID, c.Param("userId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// AddMediaLink godoc
// @Summary      Add a media link
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body MediaLinkRequest true "Link"
// @Success      201 {object} dto.Response{data=identity.MediaLink}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users/profile/media-links [post]
func (h *UserHandler) AddMediaLink(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	var req MediaLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	link, err := h.profileService.AddMediaLink(c.Request.Context(), userID, req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, link)
}

// UpdateMediaLink godoc
// @Summary      Update a media link
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        linkId path string true "Link id"
// @Param        request body MediaLinkRequest true "Changed fields"
// @Success      200 {object} dto.Response{data=identity.MediaLink}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users/profile/media-links/{linkId} [patch]
func (h *UserHandler) UpdateMediaLink(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	linkID, ok := h.parseUUIDParam(c, "linkId")
	if !ok {
		return
	}
	var req MediaLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	link, err := h.profileService.UpdateMediaLink(c.Request.Context(), userID, linkID, req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, link)
}

// RemoveMediaLink godoc
// @Summary      Delete a media link
// @Tags         users
// @Security     BearerAuth
// @Param        linkId path string true "Link id"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users/profile/media-links/{linkId} [delete]
func (h *UserHandler) RemoveMediaLink(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	linkID, ok := h.parseUUIDParam(c, "linkId")
	if !ok {
		return
	}
	if err := h.profileService.RemoveMediaLink(c.Request.Context(), userID, linkID); err != nil {
		h.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReorderMediaLinks godoc
// @Summary      Reorder media links
// @Description  Every existing link id must be listed once
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ReorderMediaLinksRequest true "Ordered ids"
// @Success      200 {object} dto.Response{data=[]identity.MediaLink}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users/profile/media-links/reorder [patch]
func (h *UserHandler) ReorderMediaLinks(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	var req ReorderMediaLinksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	links, err := h.profileService.ReorderMediaLinks(c.Request.Context(), userID, req.LinkIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, links)
}

// AddPricingOption godoc
// @Summary      Add a pricing option
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body PricingOptionRequest true "Option"
// @Success      201 {object} dto.Response{data=identity.PricingOption}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users/profile/pricing-options [post]
func (h *UserHandler) AddPricingOption(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	var req PricingOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	option, err := h.profileService.AddPricingOption(c.Request.Context(), userID, req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, option)
}

// UpdatePricingOption godoc
// @Summary      Update a pricing option
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        optionId path string true "Option id"
// @Param        request body PricingOptionRequest true "Changed fields"
// @Success      200 {object} dto.Response{data=identity.PricingOption}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users/profile/pricing-options/{optionId} [patch]
func (h *UserHandler) UpdatePricingOption(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	optionID, ok := h.parseUUIDParam(c, "optionId")
	if !ok {
		return
	}
	var req PricingOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	option, err := h.profileService.UpdatePricingOption(c.Request.Context(), userID, optionID, req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, option)
}

// RemovePricingOption godoc
// @Summary      Delete a pricing option
// @Tags         users
// @Security     BearerAuth
// @Param        optionId path string true "Option id"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users/profile/pricing-options/{optionId} [delete]
func (h *UserHandler) RemovePricingOption(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	optionID, ok := h.parseUUIDParam(c, "optionId")
	if !ok {
		return
	}
	if err := h.profileService.RemovePricingOption(c.Request.Context(), userID, optionID); err != nil {
		h.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReorderPricingOptions godoc
// @Summary      Reorder pricing options
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ReorderPricingOptionsRequest true "Ordered ids"
// @Success      200 {object} dto.Response{data=[]identity.PricingOption}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users/profile/pricing-options/reorder [patch]
func (h *UserHandler) ReorderPricingOptions(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	var req ReorderPricingOptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	options, err := h.profileService.ReorderPricingOptions(c.Request.Context(), userID, req.OptionIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, options)
}

// ReplacePricingOptions godoc
// @Summary      Replace all pricing options
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ReplacePricingOptionsRequest true "Options"
// @Success      200 {object} dto.Response{data=[]identity.PricingOption}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users/pricing-options [put]
func (h *UserHandler) ReplacePricingOptions(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	var req ReplacePricingOptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	inputs := make([]identity.PricingOptionInput, len(req.PricingOptions))
	for i, o := range req.PricingOptions {
		inputs[i] = o.toInput()
	}
	options, err := h.profileService.ReplacePricingOptions(c.Request.Context(), userID, inputs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, options)
}

// UpdateRequestsInfo godoc
// @Summary      Update the request form copy
// @Description  paymentMethods may be an object or a JSON string; fields are merged
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body RequestsInfoRequest true "Changed fields"
// @Success      200 {object} dto.Response{data=identity.RequestsInfo}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users/profile/requests-info [patch]
func (h *UserHandler) UpdateRequestsInfo(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	var req RequestsInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	update, err := req.toUpdate()
	if err != nil {
		h.BadRequest(c, "paymentMethods must be an object")
		return
	}
	info, err := h.profileService.UpdateRequestsInfo(c.Request.Context(), userID, update)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

// UpdatePaymentSettings godoc
// @Summary      Update payment settings
// @Description  Omitted account identifiers keep their stored values
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body PaymentSettingsRequest true "Settings"
// @Success      200 {object} dto.Response{data=identity.PaymentSettings}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users/payment-settings [put]
func (h *UserHandler) UpdatePaymentSettings(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	var req PaymentSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	settings, err := h.profileService.UpdatePaymentSettings(c.Request.Context(), userID, req.toUpdate())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, settings)
}
