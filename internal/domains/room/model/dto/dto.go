package dto

import (
	"mime/multipart"

	"github.com/google/uuid"

	"lunabay/internal/domains/room/model"
	"lunabay/shared"
)

type CreateRoomRequest struct {
	Name          string                `json:"name"          validate:"required,max=100"`
	Description   string                `json:"description"   validate:"omitempty,max=1000"`
	PricePerNight int64                 `json:"pricePerNight" validate:"required,gt=0"`
	FeatureIDs    []string              `json:"featureIds"    validate:"omitempty,dive,uuid"`
	Image         *multipart.FileHeader `json:"image"         validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	ImageFile     multipart.File        `json:"-"`
}

func (c *CreateRoomRequest) ToModel(imageURL string) model.Room {
	return model.Room{
		ID:            uuid.NewString(),
		Name:          c.Name,
		Description:   c.Description,
		PricePerNight: c.PricePerNight,
		ImageURL:      imageURL,
	}
}

type UpdateRoomRequest struct {
	Name          string                `db:"name"            json:"name"          validate:"omitempty,max=100"`
	Description   *string               `db:"description"     json:"description"   validate:"omitempty,max=1000"`
	PricePerNight *int64                `db:"price_per_night" json:"pricePerNight" validate:"omitempty,gt=0"`
	FeatureIDs    *[]string             `json:"featureIds"    validate:"omitempty,dive,uuid"`
	Image         *multipart.FileHeader `json:"image"         validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	ImageFile     multipart.File        `json:"-"`
}

type RoomResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	PricePerNight int64    `json:"pricePerNight"`
	ImageURL      string   `json:"imageUrl"`
	Features      []string `json:"features"`
}

func (r *RoomResponse) FromModel(model model.Room, features []string) {
	if features == nil {
		features = []string{}
	}

	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.PricePerNight = model.PricePerNight
	r.ImageURL = model.ImageURL
	r.Features = features
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, features map[string][]string, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod, features[mod.ID])
	}
}

type FeatureResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type GetFeaturesResponse struct {
	Features []FeatureResponse `json:"features"`
}

func (r *GetFeaturesResponse) FromModels(models []model.Feature) {
	r.Features = make([]FeatureResponse, len(models))
	for i, mod := range models {
		r.Features[i] = FeatureResponse{ID: mod.ID, Name: mod.Name}
	}
}
