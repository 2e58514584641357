package inventory

import (
	"context"
	"fmt"
	"slices"

	"github.com/conamormarket-lgtm/inventario-api/internal/domain"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/entity"
	domaininv "github.com/conamormarket-lgtm/inventario-api/internal/domain/inventory"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/repository"
)

// MetadataUseCase administra los vocabularios configurables (tipos de prenda,
// colores, tallas) y los esquemas de inventarios genéricos. Cada mutación se
// persiste de inmediato en el documento de configuración.
//
// Las altas rechazan duplicados exactos (sensible a mayúsculas) y agregan al
// final: el orden de las listas es el orden de presentación. Las bajas se
// bloquean mientras cualquier fila del ledger referencie el valor, aunque su
// cantidad sea cero: una fila sin etiqueta válida no se puede renderizar.
type MetadataUseCase struct {
	configRepo repository.ConfigRepository
	stockRepo  repository.StockRepository
}

// NewMetadataUseCase construye el caso de uso.
func NewMetadataUseCase(configRepo repository.ConfigRepository, stockRepo repository.StockRepository) *MetadataUseCase {
	return &MetadataUseCase{configRepo: configRepo, stockRepo: stockRepo}
}

// GetMetadata devuelve los vocabularios del inventario de prendas.
func (uc *MetadataUseCase) GetMetadata(_ context.Context) (*entity.PrendasMetadata, error) {
	doc, err := uc.configRepo.Load()
	if err != nil {
		return nil, err
	}
	return &doc.ConfigInventarioPrendas, nil
}

// AddTipoPrenda agrega un tipo de prenda al final de la lista.
func (uc *MetadataUseCase) AddTipoPrenda(ctx context.Context, nombre string) error {
	return uc.mutate(ctx, func(meta *entity.PrendasMetadata) error {
		if nombre == "" {
			return fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput)
		}
		if slices.Contains(meta.TiposPrenda, nombre) {
			return fmt.Errorf("%w: la prenda ya existe", domain.ErrDuplicate)
		}
		meta.TiposPrenda = append(meta.TiposPrenda, nombre)
		return nil
	})
}

// RemoveTipoPrenda elimina un tipo de prenda si ningún SKU lo referencia.
func (uc *MetadataUseCase) RemoveTipoPrenda(ctx context.Context, nombre string) error {
	return uc.mutate(ctx, func(meta *entity.PrendasMetadata) error {
		idx := slices.Index(meta.TiposPrenda, nombre)
		if idx == -1 {
			return fmt.Errorf("%w: prenda no encontrada", domain.ErrNotFound)
		}
		if err := uc.checkUnreferenced(func(it entity.StockItem) string { return it.Tipo }, nombre); err != nil {
			return err
		}
		meta.TiposPrenda = slices.Delete(meta.TiposPrenda, idx, idx+1)
		return nil
	})
}

// AddColor agrega un color (con su hex) al final de la lista.
func (uc *MetadataUseCase) AddColor(ctx context.Context, nombre, hex string) error {
	return uc.mutate(ctx, func(meta *entity.PrendasMetadata) error {
		if nombre == "" {
			return fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput)
		}
		for _, c := range meta.Colores {
			if c.Nombre == nombre {
				return fmt.Errorf("%w: el color ya existe", domain.ErrDuplicate)
			}
		}
		if hex == "" {
			hex = "#000000"
		}
		meta.Colores = append(meta.Colores, entity.ColorDef{Nombre: nombre, Hex: hex})
		return nil
	})
}

// RemoveColor elimina un color si ningún SKU lo referencia.
func (uc *MetadataUseCase) RemoveColor(ctx context.Context, nombre string) error {
	return uc.mutate(ctx, func(meta *entity.PrendasMetadata) error {
		idx := slices.IndexFunc(meta.Colores, func(c entity.ColorDef) bool { return c.Nombre == nombre })
		if idx == -1 {
			return fmt.Errorf("%w: color no encontrado", domain.ErrNotFound)
		}
		if err := uc.checkUnreferenced(func(it entity.StockItem) string { return it.Color }, nombre); err != nil {
			return err
		}
		meta.Colores = slices.Delete(meta.Colores, idx, idx+1)
		return nil
	})
}

// AddTalla agrega una talla al final de la lista.
func (uc *MetadataUseCase) AddTalla(ctx context.Context, nombre string) error {
	return uc.mutate(ctx, func(meta *entity.PrendasMetadata) error {
		if nombre == "" {
			return fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput)
		}
		if slices.Contains(meta.Tallas, nombre) {
			return fmt.Errorf("%w: la talla ya existe", domain.ErrDuplicate)
		}
		meta.Tallas = append(meta.Tallas, nombre)
		return nil
	})
}

// RemoveTalla elimina una talla si ningún SKU la referencia.
func (uc *MetadataUseCase) RemoveTalla(ctx context.Context, nombre string) error {
	return uc.mutate(ctx, func(meta *entity.PrendasMetadata) error {
		idx := slices.Index(meta.Tallas, nombre)
		if idx == -1 {
			return fmt.Errorf("%w: talla no encontrada", domain.ErrNotFound)
		}
		if err := uc.checkUnreferenced(func(it entity.StockItem) string { return it.Talla }, nombre); err != nil {
			return err
		}
		meta.Tallas = slices.Delete(meta.Tallas, idx, idx+1)
		return nil
	})
}

// GetGenericConfig devuelve el esquema de un inventario genérico.
func (uc *MetadataUseCase) GetGenericConfig(_ context.Context, inventarioID string) (*entity.GenericConfig, error) {
	doc, err := uc.configRepo.Load()
	if err != nil {
		return nil, err
	}
	cfg, ok := doc.ConfigInventarioGenerico[inventarioID]
	if !ok {
		return nil, fmt.Errorf("%w: inventario %q sin configuración", domain.ErrNotFound, inventarioID)
	}
	return &cfg, nil
}

// SetGenericConfig crea o reemplaza el esquema de un inventario genérico.
// Las características quedan nombradas; el orden de la lista es el orden
// canónico de los valores en claves y detalles.
func (uc *MetadataUseCase) SetGenericConfig(_ context.Context, inventarioID string, cfg entity.GenericConfig) error {
	if inventarioID == "" || cfg.NombreItem == "" {
		return fmt.Errorf("%w: inventario y nombre de ítem son obligatorios", domain.ErrInvalidInput)
	}
	seen := make(map[string]bool, len(cfg.Caracteristicas))
	for _, c := range cfg.Caracteristicas {
		if c.Nombre == "" {
			return fmt.Errorf("%w: característica sin nombre", domain.ErrInvalidInput)
		}
		if seen[c.Nombre] {
			return fmt.Errorf("%w: característica %q repetida", domain.ErrDuplicate, c.Nombre)
		}
		seen[c.Nombre] = true
	}
	doc, err := uc.configRepo.Load()
	if err != nil {
		return err
	}
	if doc.ConfigInventarioGenerico == nil {
		doc.ConfigInventarioGenerico = make(map[string]entity.GenericConfig)
	}
	doc.ConfigInventarioGenerico[inventarioID] = cfg
	return uc.configRepo.Save(doc)
}

// mutate carga el documento de configuración, aplica fn sobre la metadata de
// prendas y guarda. Las operaciones de metadata son síncronas y de un solo
// escritor, así que load-modify-save es una unidad.
func (uc *MetadataUseCase) mutate(_ context.Context, fn func(meta *entity.PrendasMetadata) error) error {
	doc, err := uc.configRepo.Load()
	if err != nil {
		return err
	}
	if err := fn(&doc.ConfigInventarioPrendas); err != nil {
		return err
	}
	return uc.configRepo.Save(doc)
}

// checkUnreferenced falla con ErrConflict si alguna fila del ledger referencia
// el valor, sin importar su cantidad.
func (uc *MetadataUseCase) checkUnreferenced(field func(entity.StockItem) string, nombre string) error {
	snap, err := uc.stockRepo.Snapshot()
	if err != nil {
		return err
	}
	want := domaininv.NormalizeKeyPart(nombre)
	for _, it := range snap.Items {
		if domaininv.NormalizeKeyPart(field(it)) == want {
			return fmt.Errorf("%w: %q está en uso por el inventario", domain.ErrConflict, nombre)
		}
	}
	return nil
}
