package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"jobreach-be/internal/entity"
	"jobreach-be/internal/model"
)

type ProfileMapper struct{}

func NewProfileMapper() *ProfileMapper {
	return &ProfileMapper{}
}

func (m *ProfileMapper) ProfileToEntity(p *model.UserProfile) *entity.UserProfile {
	if p == nil {
		return nil
	}
	return &entity.UserProfile{
		Id:              p.Id,
		UserId:          p.UserId,
		Headline:        p.Headline,
		Location:        p.Location,
		YearsExperience: p.YearsExperience,
		Skills:          jsonToStrings(p.Skills),
		Experience:      p.Experience,
		SourceSessionId: p.SourceSessionId,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (m *ProfileMapper) ProfileToModel(p *entity.UserProfile) *model.UserProfile {
	if p == nil {
		return nil
	}
	return &model.UserProfile{
		Id:              p.Id,
		UserId:          p.UserId,
		Headline:        p.Headline,
		Location:        p.Location,
		YearsExperience: p.YearsExperience,
		Skills:          stringsToJSON(p.Skills),
		Experience:      p.Experience,
		SourceSessionId: p.SourceSessionId,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (m *ProfileMapper) SummaryToEntity(s *model.UserSummary) *entity.UserSummary {
	if s == nil {
		return nil
	}
	return &entity.UserSummary{
		Id:              s.Id,
		UserId:          s.UserId,
		Summary:         s.Summary,
		Version:         s.Version,
		SourceSessionId: s.SourceSessionId,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (m *ProfileMapper) SummaryToModel(s *entity.UserSummary) *model.UserSummary {
	if s == nil {
		return nil
	}
	return &model.UserSummary{
		Id:              s.Id,
		UserId:          s.UserId,
		Summary:         s.Summary,
		Version:         s.Version,
		SourceSessionId: s.SourceSessionId,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (m *ProfileMapper) CriteriaToEntity(c *model.TargetCriteria) *entity.TargetCriteria {
	if c == nil {
		return nil
	}
	return &entity.TargetCriteria{
		Id:            c.Id,
		UserId:        c.UserId,
		Roles:         jsonToStrings(c.Roles),
		Industries:    jsonToStrings(c.Industries),
		CompanySizes:  jsonToStrings(c.CompanySizes),
		Locations:     jsonToStrings(c.Locations),
		ExcludedNames: jsonToStrings(c.ExcludedNames),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (m *ProfileMapper) CriteriaToModel(c *entity.TargetCriteria) *model.TargetCriteria {
	if c == nil {
		return nil
	}
	return &model.TargetCriteria{
		Id:            c.Id,
		UserId:        c.UserId,
		Roles:         stringsToJSON(c.Roles),
		Industries:    stringsToJSON(c.Industries),
		CompanySizes:  stringsToJSON(c.CompanySizes),
		Locations:     stringsToJSON(c.Locations),
		ExcludedNames: stringsToJSON(c.ExcludedNames),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func jsonToStrings(j datatypes.JSON) []string {
	if len(j) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(j, &out); err != nil {
		return nil
	}
	return out
}

func stringsToJSON(values []string) datatypes.JSON {
	if values == nil {
		return nil
	}
	b, err := json.Marshal(values)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
