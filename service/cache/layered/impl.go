package layered

import (
	"reflect"

	"github.com/x-xyz/gameanalytics/base/ctx"
	"github.com/x-xyz/gameanalytics/base/log"
	"github.com/x-xyz/gameanalytics/service/cache"
)

// impl reads through layers in order, fastest first. A hit in a slower layer is copied
// into every faster layer that missed.
type impl struct {
	layers []cache.Service
}

func New(layers ...cache.Service) cache.Service {
	return &impl{
		layers: layers,
	}
}

func (im *impl) GetByFunc(c ctx.Ctx, key string, container interface{}, getter cache.OneTimeGetter) error {
	err := im.Get(c, key, container)
	if err == nil {
		return nil
	} else if err != cache.ErrNotFound {
		c.WithFields(log.Fields{"err": err, "key": key}).Warn("layered get failed, rebuilding")
	}

	val, err := getter()
	if err != nil {
		return err
	}

	if err := im.Set(c, key, val); err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("layered set failed")
	}

	reflect.ValueOf(container).Elem().Set(reflect.ValueOf(val).Elem())
	return nil
}

func (im *impl) Get(c ctx.Ctx, key string, container interface{}) error {
	hit := -1
	for idx, lyr := range im.layers {
		err := lyr.Get(c, key, container)
		if err == cache.ErrNotFound {
			continue
		} else if err != nil {
			return err
		}
		hit = idx
		break
	}

	if hit == -1 {
		return cache.ErrNotFound
	}

	for idx := 0; idx < hit; idx++ {
		if err := im.layers[idx].Set(c, key, container); err != nil {
			c.WithFields(log.Fields{"err": err, "key": key, "layer": idx}).Warn("backfill failed")
		}
	}
	return nil
}

func (im *impl) Set(c ctx.Ctx, key string, value interface{}) error {
	for _, lyr := range im.layers {
		if err := lyr.Set(c, key, value); err != nil {
			return err
		}
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	for _, lyr := range im.layers {
		if err := lyr.Del(c, key); err != nil {
			return err
		}
	}
	return nil
}
