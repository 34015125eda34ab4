package model

// Profile document field names.
const (
	ProfileFieldName      = "name"
	ProfileFieldEmail     = "email"
	ProfileFieldPhotoURL  = "photoURL"
	ProfileFieldCreatedAt = "createdAt"
	ProfileFieldUpdatedAt = "updatedAt"
)

// ProfileRecord is the per-identity document kept next to the identity account.
type ProfileRecord struct {
	Name      string
	Email     string
	PhotoURL  string
	CreatedAt string
	UpdatedAt string
}

// ProfileRecordFromFields reads known profile fields, ignoring anything that
// is not a string.
func ProfileRecordFromFields(fields map[string]any) ProfileRecord {
	str := func(key string) string {
		s, _ := fields[key].(string)
		return s
	}

	return ProfileRecord{
		Name:      str(ProfileFieldName),
		Email:     str(ProfileFieldEmail),
		PhotoURL:  str(ProfileFieldPhotoURL),
		CreatedAt: str(ProfileFieldCreatedAt),
		UpdatedAt: str(ProfileFieldUpdatedAt),
	}
}

// Fields returns the non-empty fields of the record.
func (r ProfileRecord) Fields() map[string]any {
	fields := map[string]any{}
	set := func(key, value string) {
		if value != "" {
			fields[key] = value
		}
	}
	set(ProfileFieldName, r.Name)
	set(ProfileFieldEmail, r.Email)
	set(ProfileFieldPhotoURL, r.PhotoURL)
	set(ProfileFieldCreatedAt, r.CreatedAt)
	set(ProfileFieldUpdatedAt, r.UpdatedAt)

	return fields
}

// UpdateProfileParams are profile update inputs. Empty strings mean absent.
type UpdateProfileParams struct {
	DisplayName string
	PhotoURL    string
	Name        string
}

// ProfileView is the identity merged with its profile record.
type ProfileView struct {
	Identity Identity
	Name     string
}
