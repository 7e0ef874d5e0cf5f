package kommo

// PushResult reports the Kommo ids created or reused for one lead.
type PushResult struct {
	LeadID    string `json:"lead_id"`
	KommoID   int    `json:"kommo_id"`
	ContactID int    `json:"contact_id"`
}

type embeddedIDs struct {
	Embedded struct {
		Leads []struct {
			ID int `json:"id"`
		} `json:"leads"`
		Contacts []struct {
			ID int `json:"id"`
		} `json:"contacts"`
	} `json:"_embedded"`
}

type tag struct {
	Name string `json:"name"`
}

type idRef struct {
	ID int `json:"id"`
}

type fieldValue struct {
	Value    string `json:"value"`
	EnumCode string `json:"enum_code,omitempty"`
}

type customField struct {
	FieldCode string       `json:"field_code"`
	Values    []fieldValue `json:"values"`
}

type contactPayload struct {
	Name         string        `json:"name"`
	CustomFields []customField `json:"custom_fields_values,omitempty"`
}

type leadPayload struct {
	Name     string `json:"name"`
	StatusID int    `json:"status_id,omitempty"`
	Embedded struct {
		Tags     []tag   `json:"tags,omitempty"`
		Contacts []idRef `json:"contacts,omitempty"`
	} `json:"_embedded"`
}
