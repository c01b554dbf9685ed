package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-pos-api/internal/application/dto"
	"github.com/jhoicas/inventario-pos-api/internal/domain"
	"github.com/jhoicas/inventario-pos-api/internal/domain/entity"
	"github.com/jhoicas/inventario-pos-api/internal/domain/repository"
)

// Instancias concretas del catálogo genérico.
type (
	CategoryUseCase = CatalogUseCase[entity.Category, dto.CreateCategoryRequest, dto.UpdateCategoryRequest, dto.CategoryResponse]
	CustomerUseCase = CatalogUseCase[entity.Customer, dto.CreatePartyRequest, dto.UpdatePartyRequest, dto.PartyResponse]
	SupplierUseCase = CatalogUseCase[entity.Supplier, dto.CreatePartyRequest, dto.UpdatePartyRequest, dto.PartyResponse]
	ProductUseCase  = CatalogUseCase[entity.Product, dto.CreateProductRequest, dto.UpdateProductRequest, dto.ProductResponse]
)

// NewCategoryUseCase catálogo de categorías.
func NewCategoryUseCase(repo repository.CategoryRepository, deps CatalogDeps) *CategoryUseCase {
	return NewCatalogUseCase(repository.SoftDeleteRepository[entity.Category](repo), CatalogHooks[entity.Category, dto.CreateCategoryRequest, dto.UpdateCategoryRequest, dto.CategoryResponse]{
		Kind: "category",
		Build: func(_ context.Context, in dto.CreateCategoryRequest) (*entity.Category, error) {
			now := time.Now()
			return &entity.Category{
				ID:          uuid.New().String(),
				Name:        in.Name,
				Description: in.Description,
				CreatedAt:   now,
				UpdatedAt:   now,
			}, nil
		},
		Apply: func(_ context.Context, c *entity.Category, in dto.UpdateCategoryRequest) error {
			if in.Name != nil {
				c.Name = *in.Name
			}
			if in.Description != nil {
				c.Description = *in.Description
			}
			c.UpdatedAt = time.Now()
			return nil
		},
		Response: func(c *entity.Category) dto.CategoryResponse {
			return dto.CategoryResponse{
				ID: c.ID, Name: c.Name, Description: c.Description,
				CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
			}
		},
	}, deps)
}

// NewCustomerUseCase catálogo de clientes.
func NewCustomerUseCase(repo repository.CustomerRepository, deps CatalogDeps) *CustomerUseCase {
	return NewCatalogUseCase(repository.SoftDeleteRepository[entity.Customer](repo), CatalogHooks[entity.Customer, dto.CreatePartyRequest, dto.UpdatePartyRequest, dto.PartyResponse]{
		Kind: "customer",
		Build: func(_ context.Context, in dto.CreatePartyRequest) (*entity.Customer, error) {
			now := time.Now()
			return &entity.Customer{
				ID: uuid.New().String(), Name: in.Name, Phone: in.Phone, Address: in.Address,
				CreatedAt: now, UpdatedAt: now,
			}, nil
		},
		Apply: func(_ context.Context, c *entity.Customer, in dto.UpdatePartyRequest) error {
			applyParty(&c.Name, &c.Phone, &c.Address, in)
			c.UpdatedAt = time.Now()
			return nil
		},
		Response: func(c *entity.Customer) dto.PartyResponse {
			return dto.PartyResponse{
				ID: c.ID, Name: c.Name, Phone: c.Phone, Address: c.Address,
				CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
			}
		},
	}, deps)
}

// NewSupplierUseCase catálogo de proveedores.
func NewSupplierUseCase(repo repository.SupplierRepository, deps CatalogDeps) *SupplierUseCase {
	return NewCatalogUseCase(repository.SoftDeleteRepository[entity.Supplier](repo), CatalogHooks[entity.Supplier, dto.CreatePartyRequest, dto.UpdatePartyRequest, dto.PartyResponse]{
		Kind: "supplier",
		Build: func(_ context.Context, in dto.CreatePartyRequest) (*entity.Supplier, error) {
			now := time.Now()
			return &entity.Supplier{
				ID: uuid.New().String(), Name: in.Name, Phone: in.Phone, Address: in.Address,
				CreatedAt: now, UpdatedAt: now,
			}, nil
		},
		Apply: func(_ context.Context, s *entity.Supplier, in dto.UpdatePartyRequest) error {
			applyParty(&s.Name, &s.Phone, &s.Address, in)
			s.UpdatedAt = time.Now()
			return nil
		},
		Response: func(s *entity.Supplier) dto.PartyResponse {
			return dto.PartyResponse{
				ID: s.ID, Name: s.Name, Phone: s.Phone, Address: s.Address,
				CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt,
			}
		},
	}, deps)
}

// NewProductUseCase catálogo de productos: SKU único y categoría existente.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, deps CatalogDeps) *ProductUseCase {
	requireCategory := func(ctx context.Context, id string) error {
		c, err := categoryRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.NewReferenceNotFound("category", id)
		}
		return nil
	}
	requireFreeSKU := func(ctx context.Context, sku, selfID string) error {
		existing, err := repo.GetBySKU(ctx, sku)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != selfID {
			return domain.ErrDuplicate
		}
		return nil
	}

	return NewCatalogUseCase(repository.SoftDeleteRepository[entity.Product](repo), CatalogHooks[entity.Product, dto.CreateProductRequest, dto.UpdateProductRequest, dto.ProductResponse]{
		Kind: "product",
		Build: func(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
			if err := requireFreeSKU(ctx, in.SKU, ""); err != nil {
				return nil, err
			}
			if err := requireCategory(ctx, in.CategoryID); err != nil {
				return nil, err
			}
			now := time.Now()
			return &entity.Product{
				ID: uuid.New().String(), SKU: in.SKU, Name: in.Name, CategoryID: in.CategoryID, Brand: in.Brand,
				CreatedAt: now, UpdatedAt: now,
			}, nil
		},
		Apply: func(ctx context.Context, p *entity.Product, in dto.UpdateProductRequest) error {
			if in.SKU != nil && *in.SKU != p.SKU {
				if err := requireFreeSKU(ctx, *in.SKU, p.ID); err != nil {
					return err
				}
				p.SKU = *in.SKU
			}
			if in.CategoryID != nil {
				if err := requireCategory(ctx, *in.CategoryID); err != nil {
					return err
				}
				p.CategoryID = *in.CategoryID
			}
			if in.Name != nil {
				p.Name = *in.Name
			}
			if in.Brand != nil {
				p.Brand = *in.Brand
			}
			p.UpdatedAt = time.Now()
			return nil
		},
		Response: func(p *entity.Product) dto.ProductResponse {
			return dto.ProductResponse{
				ID: p.ID, SKU: p.SKU, Name: p.Name, CategoryID: p.CategoryID, Brand: p.Brand,
				CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
			}
		},
	}, deps)
}

func applyParty(name, phone, address *string, in dto.UpdatePartyRequest) {
	if in.Name != nil {
		*name = *in.Name
	}
	if in.Phone != nil {
		*phone = *in.Phone
	}
	if in.Address != nil {
		*address = *in.Address
	}
}
