// internal/repository/mock_gen.go
package repository

//go:generate mockgen -source=./organization.go -destination=../mocks/mock_organization_repository.go -package=mocks OrganizationRepositoryIface
//go:generate mockgen -source=./member.go -destination=../mocks/mock_member_repository.go -package=mocks MemberRepositoryIface
//go:generate mockgen -source=./admin.go -destination=../mocks/mock_admin_repository.go -package=mocks AdminRepositoryIface
