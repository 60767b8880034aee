package meta

type UpsertMetaRequest struct {
	ItemName  string `json:"item_name" binding:"required"`
	ItemGroup string `json:"item_group" binding:"required"`
	Remark    string `json:"remark"`
}

type DeleteMetaRequest struct {
	ItemName string `json:"item_name" binding:"required"`
}

type MetaResponse struct {
	MetaID    uint   `json:"meta_id"`
	ItemName  string `json:"item_name"`
	ItemGroup string `json:"item_group"`
	Remark    string `json:"remark"`
	UpdatedAt string `json:"updated_at"`
}

type MetaStatusResponse struct {
	Status    string `json:"status"`
	ItemName  string `json:"item_name"`
	ItemGroup string `json:"item_group,omitempty"`
}
