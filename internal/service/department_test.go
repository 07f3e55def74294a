package service

import (
	"testing"

	"github.com/papertrails/papertrails/internal/api/dto"
	"github.com/papertrails/papertrails/internal/domain/department"
	"github.com/papertrails/papertrails/internal/domain/user"
	ierr "github.com/papertrails/papertrails/internal/errors"
	"github.com/papertrails/papertrails/internal/testutil"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/stretchr/testify/suite"
)

type DepartmentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  DepartmentService
	testData struct {
		legal   *department.Department
		board   *department.Department
		chief   *user.User
		analyst *user.User
	}
}

func TestDepartmentService(t *testing.T) {
	suite.Run(t, new(DepartmentServiceSuite))
}

func (s *DepartmentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewDepartmentService(newTestServiceParams(&s.BaseServiceTestSuite))

	s.testData.legal = s.MustCreateDepartment("Legal", false)
	s.testData.board = s.MustCreateDepartment("Board", true)
	s.testData.chief = s.MustCreateUser("chief@hq.test", "Chief", s.testData.board.ID)
	s.testData.analyst = s.MustCreateUser("analyst@hq.test", "Analyst", s.testData.legal.ID)
}

func (s *DepartmentServiceSuite) TestCreateDepartment() {
	resp, err := s.service.CreateDepartment(s.GetContext(), dto.CreateDepartmentRequest{
		Name:      "Procurement",
		Executive: false,
	})
	s.Require().NoError(err)
	s.NotEmpty(resp.ID)
	s.Equal("Procurement", resp.Name)

	got, err := s.service.GetDepartment(s.GetContext(), resp.ID)
	s.Require().NoError(err)
	s.Equal(resp.ID, got.ID)
}

func (s *DepartmentServiceSuite) TestCreateDepartment_RequiresName() {
	_, err := s.service.CreateDepartment(s.GetContext(), dto.CreateDepartmentRequest{})
	s.True(ierr.IsValidation(err))
}

func (s *DepartmentServiceSuite) TestListDepartments() {
	resp, err := s.service.ListDepartments(s.GetContext(), nil)
	s.Require().NoError(err)
	s.Len(resp.Items, 2)
}

func (s *DepartmentServiceSuite) TestGrantPermission() {
	ctx := s.GetContextAs(s.testData.chief.ID)

	resp, err := s.service.GrantPermission(ctx, s.testData.legal.ID, dto.CreateDepartmentPermissionRequest{
		UserID:         s.testData.chief.ID,
		PermissionType: types.PermissionTypeView,
	})
	s.Require().NoError(err)
	s.Equal(s.testData.legal.ID, resp.DepartmentID)
	s.Require().NotNil(resp.ApprovedBy)
	s.Equal(s.testData.chief.ID, *resp.ApprovedBy)

	permissions, err := s.service.ListPermissions(ctx, s.testData.legal.ID)
	s.Require().NoError(err)
	s.Require().Len(permissions, 1)
	s.Equal(types.PermissionTypeView, permissions[0].PermissionType)

	users, err := s.GetStores().UserRepo.ListByDepartmentPermission(ctx, s.testData.legal.ID)
	s.Require().NoError(err)
	s.Require().Len(users, 1)
	s.Equal(s.testData.chief.ID, users[0].ID)
}

func (s *DepartmentServiceSuite) TestGrantPermission_Denied() {
	tests := []struct {
		name     string
		approver string
	}{
		{name: "non executive approver", approver: s.testData.analyst.ID},
		{name: "unknown approver", approver: "user_missing"},
		{name: "anonymous", approver: ""},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.GrantPermission(s.GetContextAs(tt.approver), s.testData.legal.ID, dto.CreateDepartmentPermissionRequest{
				UserID:         s.testData.analyst.ID,
				PermissionType: types.PermissionTypeEdit,
			})
			s.Require().Error(err)
			s.True(ierr.IsPermissionDenied(err))
		})
	}

	permissions, err := s.service.ListPermissions(s.GetContext(), s.testData.legal.ID)
	s.Require().NoError(err)
	s.Empty(permissions)
}

func (s *DepartmentServiceSuite) TestGrantPermission_UnknownTargets() {
	ctx := s.GetContextAs(s.testData.chief.ID)

	_, err := s.service.GrantPermission(ctx, "dept_missing", dto.CreateDepartmentPermissionRequest{
		UserID:         s.testData.analyst.ID,
		PermissionType: types.PermissionTypeView,
	})
	s.True(ierr.IsNotFound(err))

	_, err = s.service.GrantPermission(ctx, s.testData.legal.ID, dto.CreateDepartmentPermissionRequest{
		UserID:         "user_missing",
		PermissionType: types.PermissionTypeView,
	})
	s.True(ierr.IsNotFound(err))
}

func (s *DepartmentServiceSuite) TestGrantPermission_InvalidType() {
	_, err := s.service.GrantPermission(s.GetContextAs(s.testData.chief.ID), s.testData.legal.ID, dto.CreateDepartmentPermissionRequest{
		UserID:         s.testData.analyst.ID,
		PermissionType: "owner",
	})
	s.True(ierr.IsValidation(err))
}

func (s *DepartmentServiceSuite) TestGrantPermission_Duplicate() {
	ctx := s.GetContextAs(s.testData.chief.ID)
	req := dto.CreateDepartmentPermissionRequest{
		UserID:         s.testData.analyst.ID,
		PermissionType: types.PermissionTypeView,
	}

	_, err := s.service.GrantPermission(ctx, s.testData.board.ID, req)
	s.Require().NoError(err)

	_, err = s.service.GrantPermission(ctx, s.testData.board.ID, req)
	s.True(ierr.IsAlreadyExists(err))
}
