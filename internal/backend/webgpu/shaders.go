//go:build webgpu

package webgpu

// WGSL compute shaders for the elementwise kernels.
// Every shader binds its inputs first, then y, then Params.

// workgroupSize is the number of threads per workgroup.
const workgroupSize = 256

// setShader fills y with alpha.
const setShader = `
@group(0) @binding(0) var<storage, read_write> y: array<f32>;

struct Params {
    size: u32,
    alpha: f32,
    beta: f32,
    p: f32,
}
@group(0) @binding(1) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        y[idx] = params.alpha;
    }
}
`

// copyShader copies x into y.
const copyShader = `
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read_write> y: array<f32>;

struct Params {
    size: u32,
    alpha: f32,
    beta: f32,
    p: f32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        y[idx] = x[idx];
    }
}
`

// scaleShader computes y = alpha*y.
const scaleShader = `
@group(0) @binding(0) var<storage, read_write> y: array<f32>;

struct Params {
    size: u32,
    alpha: f32,
    beta: f32,
    p: f32,
}
@group(0) @binding(1) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        y[idx] = params.alpha * y[idx];
    }
}
`

// axpbyShader computes y = alpha*x + beta*y.
const axpbyShader = `
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read_write> y: array<f32>;

struct Params {
    size: u32,
    alpha: f32,
    beta: f32,
    p: f32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        y[idx] = params.alpha * x[idx] + params.beta * y[idx];
    }
}
`

// addShader computes y = a + b.
const addShader = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> y: array<f32>;

struct Params {
    size: u32,
    alpha: f32,
    beta: f32,
    p: f32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        y[idx] = a[idx] + b[idx];
    }
}
`

// mulShader computes y = a * b.
const mulShader = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> y: array<f32>;

struct Params {
    size: u32,
    alpha: f32,
    beta: f32,
    p: f32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        y[idx] = a[idx] * b[idx];
    }
}
`

// divShader computes y = a / b.
const divShader = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> y: array<f32>;

struct Params {
    size: u32,
    alpha: f32,
    beta: f32,
    p: f32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        y[idx] = a[idx] / b[idx];
    }
}
`

// powxShader computes y = a^p. WGSL pow is undefined for negative bases, so squares and roots are special-cased.
const powxShader = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read_write> y: array<f32>;

struct Params {
    size: u32,
    alpha: f32,
    beta: f32,
    p: f32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        let v = a[idx];
        if (params.p == 2.0) {
            y[idx] = v * v;
        } else if (params.p == 0.5) {
            y[idx] = sqrt(v);
        } else {
            y[idx] = pow(v, params.p);
        }
    }
}
`

// signShader computes y = sign(x).
const signShader = `
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read_write> y: array<f32>;

struct Params {
    size: u32,
    alpha: f32,
    beta: f32,
    p: f32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        y[idx] = sign(x[idx]);
    }
}
`

// addScalarShader computes y = y + alpha.
const addScalarShader = `
@group(0) @binding(0) var<storage, read_write> y: array<f32>;

struct Params {
    size: u32,
    alpha: f32,
    beta: f32,
    p: f32,
}
@group(0) @binding(1) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        y[idx] = y[idx] + params.alpha;
    }
}
`
