// Copyright 2019 Tad Lebeck
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package kube

import (
	"context"
	"strings"

	"github.com/aaaaalbert/kubernetes-py/pkg/cluster"
	"github.com/aaaaalbert/kubernetes-py/pkg/object"
	"github.com/aaaaalbert/kubernetes-py/pkg/util"
	"github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/apimachinery/pkg/util/validation"
)

// PersistentVolume phases
const (
	PersistentVolumePhasePending   = "Pending"
	PersistentVolumePhaseAvailable = "Available"
	PersistentVolumePhaseBound     = "Bound"
	PersistentVolumePhaseReleased  = "Released"
	PersistentVolumePhaseFailed    = "Failed"
)

// Access modes
const (
	ReadWriteOnce = "ReadWriteOnce"
	ReadOnlyMany  = "ReadOnlyMany"
	ReadWriteMany = "ReadWriteMany"
)

// AccessModes lists the valid access modes
var AccessModes = []string{ReadWriteOnce, ReadOnlyMany, ReadWriteMany}

// Reclaim policies
const (
	ReclaimRetain  = "Retain"
	ReclaimRecycle = "Recycle"
	ReclaimDelete  = "Delete"
)

// ReclaimPolicies lists the valid reclaim policies
var ReclaimPolicies = []string{ReclaimRetain, ReclaimRecycle, ReclaimDelete}

// PersistentVolumeNameLabel is kept equal to metadata.name by SetName
const PersistentVolumeNameLabel = "name"

// spec keys
const (
	pvCapacity         = "capacity"
	pvStorage          = "storage"
	pvAccessModes      = "accessModes"
	pvReclaimPolicy    = "persistentVolumeReclaimPolicy"
	pvStorageClassName = "storageClassName"
)

// PersistentVolumeSchema describes the PersistentVolume resource.
// Create waits for the volume to become Available.
var PersistentVolumeSchema = &Schema{
	Type:       cluster.PersistentVolumeType,
	Validate:   validatePersistentVolume,
	PostCreate: WaitForPhase(PersistentVolumePhaseAvailable),
}

func validatePersistentVolume(o object.Object) error {
	for _, t := range nonPersistentVolumeTypes {
		if o.Exists(object.KeySpec, string(t)) {
			return errors.Errorf("%s is not a valid persistent volume source", t)
		}
	}
	n := 0
	for _, t := range PersistentVolumeTypes {
		if o.Exists(object.KeySpec, string(t)) {
			n++
		}
	}
	if n != 1 {
		return errors.Errorf("exactly one volume source is required, found %d", n)
	}
	return nil
}

// PersistentVolume is a typed PersistentVolume controller.
// The volume source variant is selected with SetType; the variant accessors
// fail with UnsupportedForVariant when the active variant lacks the field.
type PersistentVolume struct {
	*Controller
}

// NewPersistentVolume returns a PersistentVolume controller with a default source of the given type.
// The name is optional.
func NewPersistentVolume(cfg *Config, name string, t VolumeSourceType) (*PersistentVolume, error) {
	c, err := NewController(cfg, PersistentVolumeSchema, "")
	if err != nil {
		return nil, err
	}
	pv := &PersistentVolume{Controller: c}
	if name != "" {
		if err = pv.SetName(name); err != nil {
			return nil, err
		}
	}
	if err = pv.SetType(t); err != nil {
		return nil, err
	}
	return pv, nil
}

// NewPersistentVolumeFromObject returns a PersistentVolume controller over a parsed document
func NewPersistentVolumeFromObject(cfg *Config, o object.Object) (*PersistentVolume, error) {
	c, err := NewControllerFromObject(cfg, PersistentVolumeSchema, o)
	if err != nil {
		return nil, err
	}
	return &PersistentVolume{Controller: c}, nil
}

// SetName sets metadata.name and the name label. Names longer than a label value allows
// are not labeled, and a previous name label is removed.
func (pv *PersistentVolume) SetName(name string) error {
	return pv.Edit(func(b *object.Builder) {
		b.SetName(name)
		if len(validation.IsValidLabelValue(name)) == 0 {
			b.SetLabel(PersistentVolumeNameLabel, name)
		} else {
			b.DeleteLabel(PersistentVolumeNameLabel)
		}
	})
}

// Type returns the active volume source type, or the empty string if there is none
func (pv *PersistentVolume) Type() VolumeSourceType {
	for _, t := range PersistentVolumeTypes {
		if pv.model.Exists(object.KeySpec, string(t)) {
			return t
		}
	}
	return ""
}

// SetType replaces the volume source with the default value of the given type.
// The current source is left unchanged if the type is not a persistent volume type.
func (pv *PersistentVolume) SetType(t VolumeSourceType) error {
	if !t.IsPersistent() {
		return newError(InvalidArgument, "set type", pv.resource(), "invalid persistent volume type %q", t)
	}
	src, err := NewVolumeSource(t)
	if err != nil {
		return wrapError(InvalidArgument, "set type", pv.resource(), err)
	}
	return pv.SetSource(src)
}

// SetSource replaces the volume source
func (pv *PersistentVolume) SetSource(src VolumeSource) error {
	if src == nil || !src.SourceType().IsPersistent() {
		return newError(InvalidArgument, "set source", pv.resource(), "invalid persistent volume source")
	}
	return pv.Edit(func(b *object.Builder) {
		for _, vt := range VolumeTypes {
			b.Delete(object.KeySpec, string(vt))
		}
		b.Set(src, object.KeySpec, string(src.SourceType()))
	})
}

// Source decodes the active volume source
func (pv *PersistentVolume) Source() (VolumeSource, error) {
	t := pv.Type()
	if t == "" {
		return nil, newError(InvalidArgument, "get source", pv.resource(), "no volume source")
	}
	src, err := NewVolumeSource(t)
	if err != nil {
		return nil, wrapError(InvalidArgument, "get source", pv.resource(), err)
	}
	if err = pv.model.Decode(src, object.KeySpec, string(t)); err != nil {
		return nil, wrapError(InvalidArgument, "get source", pv.resource(), err)
	}
	return src, nil
}

func (pv *PersistentVolume) unsupported(op, field string) error {
	return newError(UnsupportedForVariant, op, pv.resource(), "%s is not a field of volume type %q", field, pv.Type())
}

// activeSource decodes the active source if it is one of types
func (pv *PersistentVolume) activeSource(field string, types ...VolumeSourceType) (VolumeSource, error) {
	if t := pv.Type(); t == "" || !util.Contains(types, t) {
		return nil, pv.unsupported("get", field)
	}
	return pv.Source()
}

func (pv *PersistentVolume) setSourceField(op, field string, value interface{}, types ...VolumeSourceType) error {
	t := pv.Type()
	if t == "" || !util.Contains(types, t) {
		return pv.unsupported(op, field)
	}
	return pv.Edit(func(b *object.Builder) {
		b.Set(value, object.KeySpec, string(t), field)
	})
}

// HostPath returns the path of a hostPath source
func (pv *PersistentVolume) HostPath() (string, error) {
	src, err := pv.activeSource("path", VolumeTypeHostPath)
	if err != nil {
		return "", err
	}
	return src.(*HostPathVolumeSource).Path, nil
}

// SetHostPath sets the path of a hostPath source
func (pv *PersistentVolume) SetHostPath(path string) error {
	return pv.setSourceField("set", "path", path, VolumeTypeHostPath)
}

// VolumeID returns the volume id of an awsElasticBlockStore source
func (pv *PersistentVolume) VolumeID() (string, error) {
	src, err := pv.activeSource("volumeID", VolumeTypeAWSElasticBlockStore)
	if err != nil {
		return "", err
	}
	return src.(*AWSElasticBlockStoreVolumeSource).VolumeID, nil
}

// SetVolumeID sets the volume id of an awsElasticBlockStore source
func (pv *PersistentVolume) SetVolumeID(id string) error {
	return pv.setSourceField("set", "volumeID", id, VolumeTypeAWSElasticBlockStore)
}

// PDName returns the disk name of a gcePersistentDisk source
func (pv *PersistentVolume) PDName() (string, error) {
	src, err := pv.activeSource("pdName", VolumeTypeGCEPersistentDisk)
	if err != nil {
		return "", err
	}
	return src.(*GCEPersistentDiskVolumeSource).PDName, nil
}

// SetPDName sets the disk name of a gcePersistentDisk source
func (pv *PersistentVolume) SetPDName(name string) error {
	return pv.setSourceField("set", "pdName", name, VolumeTypeGCEPersistentDisk)
}

var fsTypeVolumeTypes = []VolumeSourceType{VolumeTypeAWSElasticBlockStore, VolumeTypeGCEPersistentDisk, VolumeTypeCSI, VolumeTypeFlexVolume}

// FSType returns the file system type of a block or driver backed source
func (pv *PersistentVolume) FSType() (string, error) {
	src, err := pv.activeSource("fsType", fsTypeVolumeTypes...)
	if err != nil {
		return "", err
	}
	switch s := src.(type) {
	case *AWSElasticBlockStoreVolumeSource:
		return s.FSType, nil
	case *GCEPersistentDiskVolumeSource:
		return s.FSType, nil
	case *CSIPersistentVolumeSource:
		return s.FSType, nil
	case *FlexVolumeSource:
		return s.FSType, nil
	}
	return "", pv.unsupported("get", "fsType")
}

// SetFSType sets the file system type of a block or driver backed source
func (pv *PersistentVolume) SetFSType(fsType string) error {
	return pv.setSourceField("set", "fsType", fsType, fsTypeVolumeTypes...)
}

// NFSServer returns the server of an nfs source
func (pv *PersistentVolume) NFSServer() (string, error) {
	src, err := pv.activeSource("server", VolumeTypeNFS)
	if err != nil {
		return "", err
	}
	return src.(*NFSVolumeSource).Server, nil
}

// SetNFSServer sets the server of an nfs source
func (pv *PersistentVolume) SetNFSServer(server string) error {
	return pv.setSourceField("set", "server", server, VolumeTypeNFS)
}

// NFSPath returns the exported path of an nfs source
func (pv *PersistentVolume) NFSPath() (string, error) {
	src, err := pv.activeSource("path", VolumeTypeNFS)
	if err != nil {
		return "", err
	}
	return src.(*NFSVolumeSource).Path, nil
}

// SetNFSPath sets the exported path of an nfs source
func (pv *PersistentVolume) SetNFSPath(path string) error {
	return pv.setSourceField("set", "path", path, VolumeTypeNFS)
}

// SetReadOnly sets the readOnly flag of any source other than hostPath
func (pv *PersistentVolume) SetReadOnly(readOnly bool) error {
	return pv.setSourceField("set", "readOnly", readOnly, VolumeTypeAWSElasticBlockStore, VolumeTypeGCEPersistentDisk, VolumeTypeNFS, VolumeTypeCSI, VolumeTypeFlexVolume)
}

// AccessModes returns a copy of spec.accessModes
func (pv *PersistentVolume) AccessModes() []string {
	return pv.model.StringSlice(object.KeySpec, pvAccessModes)
}

// SetAccessModes replaces spec.accessModes
func (pv *PersistentVolume) SetAccessModes(modes ...string) error {
	if len(modes) == 0 {
		return newError(InvalidArgument, "set", pv.resource(), "at least one access mode is required")
	}
	for _, m := range modes {
		if !util.Contains(AccessModes, m) {
			return newError(InvalidArgument, "set", pv.resource(), "invalid access mode %q", m)
		}
	}
	return pv.Edit(func(b *object.Builder) {
		b.Set(modes, object.KeySpec, pvAccessModes)
	})
}

// Capacity returns spec.capacity.storage, or nil if it is not set
func (pv *PersistentVolume) Capacity() (*resource.Quantity, error) {
	s := pv.model.String(object.KeySpec, pvCapacity, pvStorage)
	if s == "" {
		return nil, nil
	}
	q, err := resource.ParseQuantity(s)
	if err != nil {
		return nil, wrapError(InvalidArgument, "get capacity", pv.resource(), err)
	}
	return &q, nil
}

// CapacityBytes returns spec.capacity.storage in bytes, 0 if not set
func (pv *PersistentVolume) CapacityBytes() (int64, error) {
	q, err := pv.Capacity()
	if err != nil || q == nil {
		return 0, err
	}
	return q.Value(), nil
}

// SetCapacity sets spec.capacity.storage from a quantity string such as "10Gi"
func (pv *PersistentVolume) SetCapacity(quantity string) error {
	q, err := resource.ParseQuantity(quantity)
	if err != nil {
		return wrapError(InvalidArgument, "set capacity", pv.resource(), err)
	}
	if q.Sign() <= 0 {
		return newError(InvalidArgument, "set capacity", pv.resource(), "capacity must be positive")
	}
	return pv.Edit(func(b *object.Builder) {
		b.Set(q.String(), object.KeySpec, pvCapacity, pvStorage)
	})
}

// SetCapacityBytes sets spec.capacity.storage from a byte count
func (pv *PersistentVolume) SetCapacityBytes(size int64) error {
	return pv.SetCapacity(util.K8sSizeBytes(size).String())
}

// ReclaimPolicy returns spec.persistentVolumeReclaimPolicy
func (pv *PersistentVolume) ReclaimPolicy() string {
	return pv.model.String(object.KeySpec, pvReclaimPolicy)
}

// SetReclaimPolicy sets spec.persistentVolumeReclaimPolicy
func (pv *PersistentVolume) SetReclaimPolicy(policy string) error {
	if !util.Contains(ReclaimPolicies, policy) {
		return newError(InvalidArgument, "set", pv.resource(), "invalid reclaim policy %q", policy)
	}
	return pv.Edit(func(b *object.Builder) {
		b.Set(policy, object.KeySpec, pvReclaimPolicy)
	})
}

// StorageClassName returns spec.storageClassName
func (pv *PersistentVolume) StorageClassName() string {
	return pv.model.String(object.KeySpec, pvStorageClassName)
}

// SetStorageClassName sets spec.storageClassName. The empty string removes it.
func (pv *PersistentVolume) SetStorageClassName(name string) error {
	if name == "" {
		return pv.Edit(func(b *object.Builder) {
			b.Delete(object.KeySpec, pvStorageClassName)
		})
	}
	if errs := validation.IsDNS1123Subdomain(name); len(errs) > 0 {
		return newError(InvalidArgument, "set", pv.resource(), "invalid storage class name %q: %s", name, strings.Join(errs, "; "))
	}
	return pv.Edit(func(b *object.Builder) {
		b.Set(name, object.KeySpec, pvStorageClassName)
	})
}

// Phase returns status.phase
func (pv *PersistentVolume) Phase() string {
	return pv.model.Phase()
}

// List returns all persistent volumes
func (pv *PersistentVolume) List(ctx context.Context) ([]*PersistentVolume, error) {
	return ListPersistentVolumes(ctx, pv.cfg)
}

// ListPersistentVolumes returns all persistent volumes in server order
func ListPersistentVolumes(ctx context.Context, cfg *Config) ([]*PersistentVolume, error) {
	list, err := List(ctx, cfg, PersistentVolumeSchema)
	if err != nil {
		return nil, err
	}
	ret := make([]*PersistentVolume, 0, len(list))
	for _, c := range list {
		ret = append(ret, &PersistentVolume{Controller: c})
	}
	return ret, nil
}

// GetPersistentVolumeByName returns the named persistent volume or nil if it does not exist
func GetPersistentVolumeByName(ctx context.Context, cfg *Config, name string) (*PersistentVolume, error) {
	c, err := GetByName(ctx, cfg, PersistentVolumeSchema, name)
	if err != nil || c == nil {
		return nil, err
	}
	return &PersistentVolume{Controller: c}, nil
}
