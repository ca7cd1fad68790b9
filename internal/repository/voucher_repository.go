package repository

import (
	"context"
	"encoding/json"

	"program_hub_backend/internal/model"
)

type VoucherRepository struct {
	GW *Gateway
}

func NewVoucherRepository(gw *Gateway) *VoucherRepository {
	return &VoucherRepository{GW: gw}
}

func (r *VoucherRepository) FindByID(ctx context.Context, id string) (*model.Voucher, error) {
	doc, err := r.GW.Get(ctx, CollectionVouchers, id)
	if err != nil {
		return nil, err
	}

	var v model.Voucher
	if err := json.Unmarshal(doc.Data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VoucherRepository) FindAll(ctx context.Context) ([]model.Voucher, error) {
	docs, err := r.GW.List(ctx, CollectionVouchers)
	if err != nil {
		return nil, err
	}

	vouchers := make([]model.Voucher, 0, len(docs))
	for i := range docs {
		var v model.Voucher
		if err := json.Unmarshal(docs[i].Data, &v); err != nil {
			return nil, err
		}
		vouchers = append(vouchers, v)
	}
	return vouchers, nil
}

func (r *VoucherRepository) FindByProgram(ctx context.Context, programID string) ([]model.Voucher, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]model.Voucher, 0, len(all))
	for _, v := range all {
		if v.ProgramID == programID {
			matched = append(matched, v)
		}
	}
	return matched, nil
}

func (r *VoucherRepository) Save(ctx context.Context, v *model.Voucher) error {
	if err := v.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	_, err = r.GW.Upsert(ctx, CollectionVouchers, v.ID, data, VersionAny)
	return err
}

// SaveAll 批量落盘（批量发放）；单张失败即中断并上抛
func (r *VoucherRepository) SaveAll(ctx context.Context, vouchers []model.Voucher) error {
	for i := range vouchers {
		if err := r.Save(ctx, &vouchers[i]); err != nil {
			return err
		}
	}
	return nil
}
