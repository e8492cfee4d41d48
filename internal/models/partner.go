// internal/models/partner.go
package models

type PartnerRecord struct {
	PartnerID              string `json:"partnerId" mapstructure:"partner_id"`
	Name                   string `json:"name,omitempty" mapstructure:"name"`
	ContentDeliveryEnabled bool   `json:"contentDeliveryEnabled" mapstructure:"content_delivery_enabled"`
	ManifestEnabled        bool   `json:"manifestEnabled" mapstructure:"manifest_enabled"`
}
