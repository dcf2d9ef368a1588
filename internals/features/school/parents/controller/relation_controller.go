package controller

import (
	"github.com/gofiber/fiber/v2"

	"schoolku_backend/internals/features/school/parents/dto"
	helper "schoolku_backend/internals/helpers"
)

// GET /api/parents/:id/relations
func (ctl *ParentController) ListRelations(c *fiber.Ctx) error {
	who, err := helper.GetIdentity(c)
	if err != nil {
		return err
	}
	parentID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Svc.AuthorizeParent(c.UserContext(), who.TenantID, who.UserID, parentID); err != nil {
		return err
	}
	out, err := ctl.Svc.ListRelations(c.UserContext(), who.TenantID, parentID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "relations fetched", out)
}

// POST /api/parents/:id/relations
func (ctl *ParentController) CreateRelation(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	parentID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.CreateRelationRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	out, err := ctl.Svc.CreateRelation(c.UserContext(), tenantID, parentID, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "relation created", out)
}

// PUT /api/parents/:id/relations/:relationId
func (ctl *ParentController) UpdateRelation(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	parentID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	relationID, err := helper.ParseUUIDParam(c, "relationId")
	if err != nil {
		return err
	}
	var req dto.UpdateRelationRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	out, err := ctl.Svc.UpdateRelation(c.UserContext(), tenantID, parentID, relationID, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "relation updated", out)
}

// DELETE /api/parents/:id/relations/:relationId
func (ctl *ParentController) DeleteRelation(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	parentID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	relationID, err := helper.ParseUUIDParam(c, "relationId")
	if err != nil {
		return err
	}
	if err := ctl.Svc.DeleteRelation(c.UserContext(), tenantID, parentID, relationID); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "relation deleted", fiber.Map{"id": relationID})
}
